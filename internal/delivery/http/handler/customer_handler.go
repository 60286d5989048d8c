package handler

import (
	"encoding/json"
	"net/http"

	"consultation-booking/internal/delivery/dto"
	"consultation-booking/internal/usecase"
	"consultation-booking/pkg/response"
	"consultation-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type CustomerHandler struct {
	customerUsecase usecase.CustomerUsecase
	validator       *validator.CustomValidator
}

func NewCustomerHandler(customerUsecase usecase.CustomerUsecase, validator *validator.CustomValidator) *CustomerHandler {
	return &CustomerHandler{
		customerUsecase: customerUsecase,
		validator:       validator,
	}
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	customer, err := h.customerUsecase.Create(r.Context(), &req)
	if err != nil {
		if err == usecase.ErrCustomerEmailExists {
			response.Conflict(w, "Email already exists")
			return
		}
		response.InternalServerError(w, "Failed to create customer")
		return
	}

	response.Success(w, http.StatusCreated, "Customer created successfully", customer)
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid customer ID", nil)
		return
	}

	customer, err := h.customerUsecase.FindByID(r.Context(), customerID)
	if err != nil {
		if err == usecase.ErrCustomerNotFound {
			response.NotFound(w, "Customer not found")
			return
		}
		response.InternalServerError(w, "Failed to get customer")
		return
	}

	response.Success(w, http.StatusOK, "Customer retrieved successfully", customer)
}

func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	skip, take := parsePagination(r)

	page, err := h.customerUsecase.List(r.Context(), skip, take)
	if err != nil {
		response.InternalServerError(w, "Failed to list customers")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Customers retrieved successfully", page.Items, pageMeta(skip, take, page.Total))
}

func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid customer ID", nil)
		return
	}

	var req dto.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	customer, err := h.customerUsecase.Update(r.Context(), customerID, &req)
	if err != nil {
		switch err {
		case usecase.ErrCustomerNotFound:
			response.NotFound(w, "Customer not found")
		case usecase.ErrCustomerEmailExists:
			response.Conflict(w, "Email already exists")
		default:
			response.InternalServerError(w, "Failed to update customer")
		}
		return
	}

	response.Success(w, http.StatusOK, "Customer updated successfully", customer)
}

func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid customer ID", nil)
		return
	}

	customer, err := h.customerUsecase.Delete(r.Context(), customerID)
	if err != nil {
		switch err {
		case usecase.ErrCustomerNotFound:
			response.NotFound(w, "Customer not found")
		case usecase.ErrCustomerHasSchedules:
			response.Conflict(w, "Customer still has schedules")
		default:
			response.InternalServerError(w, "Failed to delete customer")
		}
		return
	}

	response.Success(w, http.StatusOK, "Customer deleted successfully", customer)
}
