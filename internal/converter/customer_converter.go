package converter

import (
	"consultation-booking/internal/delivery/dto"
	"consultation-booking/internal/domain/entity"
)

// CustomerToResponse converts a Customer entity to its response DTO
func CustomerToResponse(customer *entity.Customer) *dto.CustomerResponse {
	if customer == nil {
		return nil
	}

	return &dto.CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}

// CustomersToResponses converts a slice of Customer entities to response DTOs
func CustomersToResponses(customers []entity.Customer) []dto.CustomerResponse {
	responses := make([]dto.CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = *CustomerToResponse(&customers[i])
	}
	return responses
}
