package staff

import (
	"context"

	"github.com/reshxs/pocket-storage-backend/internal/jsonrpc"
	"github.com/reshxs/pocket-storage-backend/internal/pagination"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/google/uuid"
)

type positionParams struct {
	Name string `json:"name" validate:"required,max=128"`
}

type createEmployeeData struct {
	FirstName  string    `json:"first_name" validate:"required,max=128"`
	LastName   string    `json:"last_name" validate:"required,max=128"`
	MiddleName *string   `json:"middle_name" validate:"omitempty,max=128"`
	PositionID uuid.UUID `json:"position_id" validate:"required"`
}

type updateEmployeeData struct {
	FirstName  *string    `json:"first_name" validate:"omitempty,min=1,max=128"`
	LastName   *string    `json:"last_name" validate:"omitempty,min=1,max=128"`
	MiddleName *string    `json:"middle_name" validate:"omitempty,max=128"`
	PositionID *uuid.UUID `json:"position_id"`
}

type addEmployeeParams struct {
	EmployeeData createEmployeeData `json:"employee_data"`
}

type updateEmployeeParams struct {
	EmployeeID   uuid.UUID          `json:"employee_id" validate:"required"`
	EmployeeData updateEmployeeData `json:"employee_data"`
}

type employeeIDParams struct {
	EmployeeID uuid.UUID `json:"employee_id" validate:"required"`
}

type employeeFiltersParams struct {
	FullNameSearch string      `json:"full_name_search"`
	PositionIDs    []uuid.UUID `json:"position_ids"`
}

type getEmployeesParams struct {
	Filters employeeFiltersParams `json:"filters"`
	pagination.Request
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterMethods(web *jsonrpc.Endpoint) {
	web.Register("add_employee_position", h.AddEmployeePosition, jsonrpc.Params("name"))
	web.Register("get_employee_positions", h.GetEmployeePositions)
	web.Register("add_employee", h.AddEmployee, jsonrpc.Params("employee_data"))
	web.Register("update_employee", h.UpdateEmployee, jsonrpc.Params("employee_id", "employee_data"))
	web.Register("get_employee", h.GetEmployee, jsonrpc.Params("employee_id"))
	web.Register("get_employees", h.GetEmployees, jsonrpc.Params("filters", "pagination", "infinite_scroll"))
}

func (h *Handler) AddEmployeePosition(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params positionParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	return h.service.AddPosition(ctx, params.Name)
}

func (h *Handler) GetEmployeePositions(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	return h.service.GetPositions(ctx)
}

func (h *Handler) AddEmployee(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params addEmployeeParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	return h.service.AddEmployee(ctx, EmployeeData{
		FirstName:  params.EmployeeData.FirstName,
		LastName:   params.EmployeeData.LastName,
		MiddleName: params.EmployeeData.MiddleName,
		PositionID: params.EmployeeData.PositionID,
	})
}

func (h *Handler) UpdateEmployee(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params updateEmployeeParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	return h.service.UpdateEmployee(ctx, params.EmployeeID, models.EmployeeChanges{
		FirstName:  params.EmployeeData.FirstName,
		LastName:   params.EmployeeData.LastName,
		MiddleName: params.EmployeeData.MiddleName,
		PositionID: params.EmployeeData.PositionID,
	})
}

func (h *Handler) GetEmployee(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params employeeIDParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	return h.service.GetEmployee(ctx, params.EmployeeID)
}

func (h *Handler) GetEmployees(ctx context.Context, call *jsonrpc.Call) (interface{}, error) {
	var params getEmployeesParams
	if err := call.Bind(&params); err != nil {
		return nil, err
	}

	filter := EmployeeFilter{FullNameSearch: params.Filters.FullNameSearch, PositionIDs: params.Filters.PositionIDs}
	return h.service.GetEmployees(ctx, filter, params.Request)
}
