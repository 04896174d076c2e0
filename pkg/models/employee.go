package models

import "github.com/google/uuid"

type EmployeePosition struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

type Employee struct {
	ID         uuid.UUID        `json:"id"`
	FirstName  string           `json:"first_name"`
	LastName   string           `json:"last_name"`
	MiddleName *string          `json:"middle_name"`
	Position   EmployeePosition `json:"position"`
}

// EmployeeChanges holds the fields of a partial employee update.
type EmployeeChanges struct {
	FirstName  *string
	LastName   *string
	MiddleName *string
	PositionID *uuid.UUID
}

func (c *EmployeeChanges) HasChanges() bool {
	return c.FirstName != nil || c.LastName != nil || c.MiddleName != nil || c.PositionID != nil
}

type FlatEmployeeRecord struct {
	ID           uuid.UUID `db:"employee_id"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	MiddleName   *string   `db:"middle_name"`
	PositionID   uuid.UUID `db:"position_id"`
	PositionName string    `db:"position_name"`
}

func (fe *FlatEmployeeRecord) TransformToEmployee() Employee {
	return Employee{
		ID:         fe.ID,
		FirstName:  fe.FirstName,
		LastName:   fe.LastName,
		MiddleName: fe.MiddleName,
		Position: EmployeePosition{
			ID:   fe.PositionID,
			Name: fe.PositionName,
		},
	}
}
