package models

import "github.com/google/uuid"

// ProductCategory is a node of the category forest. Root categories have no
// parent.
type ProductCategory struct {
	ID       uuid.UUID  `json:"id" db:"id"`
	Name     string     `json:"name" db:"name"`
	ParentID *uuid.UUID `json:"parent_id" db:"parent_id"`
}

func (c *ProductCategory) IsRoot() bool {
	return c.ParentID == nil
}
