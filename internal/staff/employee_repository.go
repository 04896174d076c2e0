package staff

import (
	"context"
	"fmt"

	"github.com/reshxs/pocket-storage-backend/internal/pagination"
	"github.com/reshxs/pocket-storage-backend/internal/repository"
	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

var employeeConstraints = custom_error.ConstraintMap{
	"employee__position_fk": custom_error.ErrEmployeePositionNotFound,
}

var employeeAliases = map[string]string{
	"first_name":  "e.first_name",
	"last_name":   "e.last_name",
	"middle_name": "e.middle_name",
	"position_id": "e.position_id",
}

var employeeOrdering = pagination.Ordering[models.FlatEmployeeRecord]{
	{Expr: goqu.I("e.last_name"), Value: func(r models.FlatEmployeeRecord) interface{} { return r.LastName }},
	{Expr: goqu.I("e.first_name"), Value: func(r models.FlatEmployeeRecord) interface{} { return r.FirstName }},
	{Expr: goqu.I("e.id"), Value: func(r models.FlatEmployeeRecord) interface{} { return r.ID.String() }, Parse: pagination.UUIDValue},
}

type EmployeeFilter struct {
	FullNameSearch string
	PositionIDs    []uuid.UUID
}

// conditions requires every word of the search to appear in some part of
// the full name.
func (f EmployeeFilter) conditions() *repository.QueryBuilder {
	return repository.NewQueryBuilder().
		AllWordsContain(f.FullNameSearch, "first_name", "last_name", "middle_name").
		InIDs("position_id", f.PositionIDs)
}

type EmployeeRepository interface {
	PersistEmployee(ctx context.Context, tx *goqu.TxDatabase, employee models.Employee) error
	GetEmployee(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, forUpdate bool) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, changes models.EmployeeChanges) error
	GetEmployees(ctx context.Context, filter EmployeeFilter, req pagination.Request) (*pagination.Page[models.Employee], error)
}

type employeeRepositoryImpl struct {
	repository *repository.Repository
}

func NewEmployeeRepository(r *repository.Repository) EmployeeRepository {
	return &employeeRepositoryImpl{repository: r}
}

func (r *employeeRepositoryImpl) employeesQuery(tx *goqu.TxDatabase) *goqu.SelectDataset {
	return r.repository.Runner(tx).
		From(goqu.T("employee").As("e")).
		Join(goqu.T("employee_position").As("ep"), goqu.On(goqu.I("ep.id").Eq(goqu.I("e.position_id")))).
		Select(
			goqu.I("e.id").As("employee_id"),
			goqu.I("e.first_name").As("first_name"),
			goqu.I("e.last_name").As("last_name"),
			goqu.I("e.middle_name").As("middle_name"),
			goqu.I("ep.id").As("position_id"),
			goqu.I("ep.name").As("position_name"),
		)
}

func (r *employeeRepositoryImpl) PersistEmployee(ctx context.Context, tx *goqu.TxDatabase, employee models.Employee) error {
	query := r.repository.Runner(tx).Insert("employee").
		Rows(goqu.Record{
			"id":          employee.ID.String(),
			"first_name":  employee.FirstName,
			"last_name":   employee.LastName,
			"middle_name": nullableString(employee.MiddleName),
			"position_id": employee.Position.ID.String(),
		})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return translate(employeeConstraints, err, "failed to insert employee")
	}

	return nil
}

func (r *employeeRepositoryImpl) GetEmployee(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, forUpdate bool) (*models.Employee, error) {
	query := r.employeesQuery(tx).Where(goqu.I("e.id").Eq(id.String()))
	if forUpdate {
		query = query.ForUpdate(exp.Wait, goqu.T("e"))
	}

	var record models.FlatEmployeeRecord
	found, err := query.ScanStructContext(ctx, &record)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if !found {
		return nil, custom_error.ErrEmployeeNotFound
	}

	employee := record.TransformToEmployee()
	return &employee, nil
}

func (r *employeeRepositoryImpl) UpdateEmployee(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, changes models.EmployeeChanges) error {
	record := goqu.Record{}
	if changes.FirstName != nil {
		record["first_name"] = *changes.FirstName
	}
	if changes.LastName != nil {
		record["last_name"] = *changes.LastName
	}
	if changes.MiddleName != nil {
		record["middle_name"] = *changes.MiddleName
	}
	if changes.PositionID != nil {
		record["position_id"] = changes.PositionID.String()
	}

	query := r.repository.Runner(tx).Update("employee").
		Set(record).
		Where(goqu.Ex{"id": id.String()})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return translate(employeeConstraints, err, "failed to update employee")
	}

	return nil
}

func (r *employeeRepositoryImpl) GetEmployees(ctx context.Context, filter EmployeeFilter, req pagination.Request) (*pagination.Page[models.Employee], error) {
	query := r.employeesQuery(nil)
	if conditions := filter.conditions(); !conditions.IsEmpty() {
		query = query.Where(conditions.BuildConditions(employeeAliases))
	}

	return pagination.Paginate(ctx, query, employeeOrdering, req, func(record models.FlatEmployeeRecord) models.Employee {
		return record.TransformToEmployee()
	})
}

func nullableString(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
