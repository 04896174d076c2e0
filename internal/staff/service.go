package staff

import (
	"context"
	"strings"

	"github.com/reshxs/pocket-storage-backend/internal/pagination"
	"github.com/reshxs/pocket-storage-backend/internal/repository"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type EmployeeData struct {
	FirstName  string
	LastName   string
	MiddleName *string
	PositionID uuid.UUID
}

type Service struct {
	positions  PositionRepository
	employees  EmployeeRepository
	transactor repository.Transactor
}

func NewService(positions PositionRepository, employees EmployeeRepository, transactor repository.Transactor) *Service {
	return &Service{positions: positions, employees: employees, transactor: transactor}
}

func (s *Service) AddPosition(ctx context.Context, name string) (*models.EmployeePosition, error) {
	position := models.EmployeePosition{ID: uuid.New(), Name: strings.TrimSpace(name)}
	if err := s.positions.PersistPosition(ctx, position); err != nil {
		return nil, err
	}
	return &position, nil
}

func (s *Service) GetPositions(ctx context.Context) ([]models.EmployeePosition, error) {
	return s.positions.GetPositions(ctx)
}

// AddEmployee stores the employee and reads it back so that the position
// name is part of the result.
func (s *Service) AddEmployee(ctx context.Context, data EmployeeData) (*models.Employee, error) {
	var employee *models.Employee

	err := s.transactor.WithTransaction(ctx, func(tx *goqu.TxDatabase) error {
		id := uuid.New()
		err := s.employees.PersistEmployee(ctx, tx, models.Employee{
			ID:         id,
			FirstName:  strings.TrimSpace(data.FirstName),
			LastName:   strings.TrimSpace(data.LastName),
			MiddleName: data.MiddleName,
			Position:   models.EmployeePosition{ID: data.PositionID},
		})
		if err != nil {
			return err
		}

		employee, err = s.employees.GetEmployee(ctx, tx, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	return employee, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, id uuid.UUID, changes models.EmployeeChanges) (*models.Employee, error) {
	var employee *models.Employee

	err := s.transactor.WithTransaction(ctx, func(tx *goqu.TxDatabase) error {
		var err error
		employee, err = s.employees.GetEmployee(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if !changes.HasChanges() {
			return nil
		}

		if err := s.employees.UpdateEmployee(ctx, tx, id, changes); err != nil {
			return err
		}

		employee, err = s.employees.GetEmployee(ctx, tx, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	return employee, nil
}

func (s *Service) GetEmployee(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	return s.employees.GetEmployee(ctx, nil, id, false)
}

func (s *Service) GetEmployees(ctx context.Context, filter EmployeeFilter, req pagination.Request) (*pagination.Page[models.Employee], error) {
	return s.employees.GetEmployees(ctx, filter, req)
}
