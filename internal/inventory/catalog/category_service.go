package catalog

import (
	"bytes"
	"context"
	"sort"
	"strings"

	"github.com/reshxs/pocket-storage-backend/internal/repository"
	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type CategoryService struct {
	categories CategoryRepository
	transactor repository.Transactor
}

func NewCategoryService(categories CategoryRepository, transactor repository.Transactor) *CategoryService {
	return &CategoryService{categories: categories, transactor: transactor}
}

func (s *CategoryService) AddCategory(ctx context.Context, name string, parentID *uuid.UUID) (*models.ProductCategory, error) {
	category := models.ProductCategory{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(name),
		ParentID: parentID,
	}

	if err := s.categories.PersistCategory(ctx, nil, category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (s *CategoryService) RenameCategory(ctx context.Context, id uuid.UUID, newName string) (*models.ProductCategory, error) {
	var category *models.ProductCategory

	err := s.transactor.WithTransaction(ctx, func(tx *goqu.TxDatabase) error {
		var err error
		category, err = s.categories.GetCategory(ctx, tx, id, true)
		if err != nil {
			return err
		}

		category.Name = strings.TrimSpace(newName)
		return s.categories.UpdateCategory(ctx, tx, *category)
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// MoveCategory reparents a category. A nil parentID makes it a root. The
// moved row and the new parent are locked together in id order so that two
// opposite moves neither deadlock nor close a cycle.
func (s *CategoryService) MoveCategory(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) (*models.ProductCategory, error) {
	if parentID != nil && *parentID == id {
		return nil, custom_error.ErrProductCategoryCycle
	}

	var category *models.ProductCategory

	err := s.transactor.WithTransaction(ctx, func(tx *goqu.TxDatabase) error {
		var err error
		if parentID == nil {
			category, err = s.categories.GetCategory(ctx, tx, id, true)
			if err != nil {
				return err
			}
		} else {
			category, err = s.lockPair(ctx, tx, id, *parentID)
			if err != nil {
				return err
			}

			cycle, err := s.categories.IsAncestor(ctx, tx, id, *parentID)
			if err != nil {
				return err
			}
			if cycle {
				return custom_error.ErrProductCategoryCycle
			}
		}

		category.ParentID = parentID
		return s.categories.UpdateCategory(ctx, tx, *category)
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// lockPair returns the category id after locking it along with parentID.
func (s *CategoryService) lockPair(ctx context.Context, tx *goqu.TxDatabase, id uuid.UUID, parentID uuid.UUID) (*models.ProductCategory, error) {
	ids := []uuid.UUID{id, parentID}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})

	locked, err := s.categories.LockCategories(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	var category *models.ProductCategory
	parentFound := false
	for i := range locked {
		switch locked[i].ID {
		case id:
			category = &locked[i]
		case parentID:
			parentFound = true
		}
	}
	if category == nil || !parentFound {
		return nil, custom_error.ErrProductCategoryNotFound
	}

	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.transactor.WithTransaction(ctx, func(tx *goqu.TxDatabase) error {
		return s.categories.DeleteCategory(ctx, tx, id)
	})
}

func (s *CategoryService) GetCategories(ctx context.Context, parentID *uuid.UUID) ([]models.ProductCategory, error) {
	return s.categories.GetCategories(ctx, parentID)
}
