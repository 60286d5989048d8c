package converter

import (
	"consultation-booking/internal/delivery/dto"
	"consultation-booking/internal/domain/entity"

	"github.com/google/uuid"
)

// ScheduleToResponse converts a Schedule entity to its response DTO.
// Relations are included only when they were eagerly loaded.
func ScheduleToResponse(schedule *entity.Schedule) *dto.ScheduleResponse {
	if schedule == nil {
		return nil
	}

	response := &dto.ScheduleResponse{
		ID:          schedule.ID,
		Objective:   schedule.Objective,
		ScheduledAt: schedule.ScheduledAt,
		CreatedAt:   schedule.CreatedAt,
		UpdatedAt:   schedule.UpdatedAt,
	}

	if schedule.Customer.ID != uuid.Nil {
		response.Customer = CustomerToResponse(&schedule.Customer)
	}
	if schedule.Doctor.ID != uuid.Nil {
		response.Doctor = DoctorToResponse(&schedule.Doctor)
	}

	return response
}

// SchedulesToResponses converts a slice of Schedule entities to response DTOs
func SchedulesToResponses(schedules []entity.Schedule) []dto.ScheduleResponse {
	responses := make([]dto.ScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = *ScheduleToResponse(&schedules[i])
	}
	return responses
}
