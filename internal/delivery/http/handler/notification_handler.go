package handler

import (
	"net/http"

	"consultation-booking/internal/usecase"
	"consultation-booking/pkg/response"
)

// NotificationHandler serves the operator view of retained notification
// failures.
type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
	}
}

func (h *NotificationHandler) ListFailedNotifications(w http.ResponseWriter, r *http.Request) {
	skip, take := parsePagination(r)

	page, err := h.notificationUsecase.ListFailures(r.Context(), skip, take)
	if err != nil {
		response.InternalServerError(w, "Failed to list notification failures")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Notification failures retrieved successfully", page.Items, pageMeta(skip, take, page.Total))
}
