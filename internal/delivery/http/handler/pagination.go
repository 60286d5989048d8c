package handler

import (
	"net/http"
	"strconv"

	"consultation-booking/pkg/response"
)

const (
	defaultTake = 10
	maxTake     = 100
)

func parsePagination(r *http.Request) (skip, take int) {
	take = defaultTake

	if v, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil && v >= 0 {
		skip = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("take")); err == nil && v > 0 {
		take = v
	}
	if take > maxTake {
		take = maxTake
	}

	return skip, take
}

func pageMeta(skip, take int, total int64) *response.Meta {
	totalPages := int(total) / take
	if int(total)%take != 0 {
		totalPages++
	}

	return &response.Meta{
		Skip:       skip,
		Take:       take,
		Total:      total,
		TotalPages: totalPages,
	}
}
