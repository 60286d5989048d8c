package converter

import (
	"consultation-booking/internal/delivery/dto"
	"consultation-booking/internal/domain/entity"
)

// FailedNotificationToResponse converts a FailedNotification entity to its response DTO
func FailedNotificationToResponse(failure *entity.FailedNotification) *dto.FailedNotificationResponse {
	if failure == nil {
		return nil
	}

	return &dto.FailedNotificationResponse{
		ID:        failure.ID,
		JobID:     failure.JobID,
		Recipient: failure.Recipient,
		Subject:   failure.Subject,
		Body:      failure.Body,
		Attempts:  failure.Attempts,
		Error:     failure.Error,
		FailedAt:  failure.FailedAt,
	}
}

// FailedNotificationsToResponses converts a slice of FailedNotification entities to response DTOs
func FailedNotificationsToResponses(failures []entity.FailedNotification) []dto.FailedNotificationResponse {
	responses := make([]dto.FailedNotificationResponse, len(failures))
	for i := range failures {
		responses[i] = *FailedNotificationToResponse(&failures[i])
	}
	return responses
}
