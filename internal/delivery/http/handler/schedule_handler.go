package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"consultation-booking/internal/delivery/dto"
	"consultation-booking/internal/usecase"
	"consultation-booking/pkg/response"
	"consultation-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ScheduleHandler struct {
	scheduleUsecase usecase.ScheduleUsecase
	validator       *validator.CustomValidator
}

func NewScheduleHandler(scheduleUsecase usecase.ScheduleUsecase, validator *validator.CustomValidator) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrCustomerNotFound:
			response.NotFound(w, "Customer not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrScheduleConflict:
			response.Conflict(w, "Doctor already has a schedule at this time")
		default:
			response.InternalServerError(w, "Failed to create schedule")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Schedule created successfully", schedule)
}

func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	scheduleID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule ID", nil)
		return
	}

	schedule, err := h.scheduleUsecase.FindByID(r.Context(), scheduleID)
	if err != nil {
		if err == usecase.ErrScheduleNotFound {
			response.NotFound(w, "Schedule not found")
			return
		}
		response.InternalServerError(w, "Failed to get schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

// parseScheduleFilters reads the optional doctor/customer/time-range
// filters. From and to are inclusive RFC3339 instants.
func parseScheduleFilters(r *http.Request) (*dto.ListSchedulesQuery, error) {
	skip, take := parsePagination(r)
	query := &dto.ListSchedulesQuery{Skip: skip, Take: take}

	params := r.URL.Query()

	if v := params.Get("doctor_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		query.DoctorID = &id
	}
	if v := params.Get("customer_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		query.CustomerID = &id
	}
	if v := params.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		query.From = &t
	}
	if v := params.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		query.To = &t
	}

	return query, nil
}

func (h *ScheduleHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	query, err := parseScheduleFilters(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid filter parameters", nil)
		return
	}

	page, err := h.scheduleUsecase.List(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to list schedules")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Schedules retrieved successfully", page.Items, pageMeta(query.Skip, query.Take, page.Total))
}

func (h *ScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	scheduleID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule ID", nil)
		return
	}

	var req dto.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.Update(r.Context(), scheduleID, &req)
	if err != nil {
		switch err {
		case usecase.ErrScheduleNotFound:
			response.NotFound(w, "Schedule not found")
		case usecase.ErrScheduleConflict:
			response.Conflict(w, "Doctor already has a schedule at this time")
		default:
			response.InternalServerError(w, "Failed to update schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule updated successfully", schedule)
}

func (h *ScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	scheduleID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule ID", nil)
		return
	}

	schedule, err := h.scheduleUsecase.Delete(r.Context(), scheduleID)
	if err != nil {
		if err == usecase.ErrScheduleNotFound {
			response.NotFound(w, "Schedule not found")
			return
		}
		response.InternalServerError(w, "Failed to delete schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule deleted successfully", schedule)
}
