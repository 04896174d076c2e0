package pagination

import (
	"context"
	"fmt"

	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

var ErrBothModes = fmt.Errorf("%w: pagination and infinite_scroll are mutually exclusive", custom_error.ErrInvalidParams)

type PageParams struct {
	Limit  int  `json:"limit" validate:"omitempty,min=1,max=500"`
	Offset int  `json:"offset" validate:"min=0"`
	Count  bool `json:"count"`
}

type CursorParams struct {
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=500"`
	Cursor string `json:"cursor"`
}

// Request is embedded into the params of every list method. Supplying
// neither mode means page mode with default values.
type Request struct {
	Pagination     *PageParams   `json:"pagination"`
	InfiniteScroll *CursorParams `json:"infinite_scroll"`
}

func (r Request) Validate() error {
	if r.Pagination != nil && r.InfiniteScroll != nil {
		return ErrBothModes
	}
	if r.InfiniteScroll != nil && r.InfiniteScroll.Cursor != "" {
		if _, err := decodeCursor(r.InfiniteScroll.Cursor); err != nil {
			return err
		}
	}
	return nil
}

type Page[T any] struct {
	Items      []T     `json:"items"`
	HasNext    bool    `json:"has_next"`
	TotalSize  *int64  `json:"total_size,omitempty"`
	NextCursor *string `json:"next_cursor,omitempty"`
}

// Sortable is satisfied by identifiers and SQL function expressions such as
// COALESCE, which lets nullable columns take part in keyset comparisons.
type Sortable interface {
	exp.Comparable
	exp.Orderable
}

// SortKey is one column of a list ordering. Value extracts the same column
// from a scanned row so the last row of a batch can become the next cursor.
// Parse checks the matching cursor value; a nil Parse accepts text only.
type SortKey[R any] struct {
	Expr  Sortable
	Desc  bool
	Value func(row R) interface{}
	Parse ValueParser
}

// Ordering must end with a unique key so that every row has a distinct
// position.
type Ordering[R any] []SortKey[R]

func (o Ordering[R]) orderExpressions() []exp.OrderedExpression {
	ordered := make([]exp.OrderedExpression, 0, len(o))
	for _, key := range o {
		if key.Desc {
			ordered = append(ordered, key.Expr.Desc())
		} else {
			ordered = append(ordered, key.Expr.Asc())
		}
	}
	return ordered
}

// after builds the keyset predicate selecting rows strictly past values:
// (k1 > v1) OR (k1 = v1 AND k2 > v2) OR ... with > flipped for DESC keys.
func (o Ordering[R]) after(values []interface{}) exp.Expression {
	branches := make([]exp.Expression, 0, len(o))
	for i, key := range o {
		parts := make([]exp.Expression, 0, i+1)
		for j := 0; j < i; j++ {
			parts = append(parts, o[j].Expr.Eq(values[j]))
		}
		if key.Desc {
			parts = append(parts, key.Expr.Lt(values[i]))
		} else {
			parts = append(parts, key.Expr.Gt(values[i]))
		}
		branches = append(branches, goqu.And(parts...))
	}
	return goqu.Or(branches...)
}

// parseCursor decodes a cursor and checks every value against its key.
func (o Ordering[R]) parseCursor(cursor string) ([]interface{}, error) {
	values, err := decodeCursor(cursor)
	if err != nil {
		return nil, err
	}
	if len(values) != len(o) {
		return nil, ErrInvalidCursor
	}

	for i, key := range o {
		parse := key.Parse
		if parse == nil {
			parse = TextValue
		}
		if values[i], err = parse(values[i]); err != nil {
			return nil, err
		}
	}
	return values, nil
}

func (o Ordering[R]) valuesOf(row R) []interface{} {
	values := make([]interface{}, 0, len(o))
	for _, key := range o {
		values = append(values, key.Value(row))
	}
	return values
}

// Paginate applies the requested mode to an already filtered dataset and
// scans rows of type R, converting each with transform.
func Paginate[R any, T any](ctx context.Context, ds *goqu.SelectDataset, ordering Ordering[R], req Request, transform func(R) T) (*Page[T], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.InfiniteScroll != nil {
		return paginateByCursor(ctx, ds, ordering, *req.InfiniteScroll, transform)
	}

	params := PageParams{}
	if req.Pagination != nil {
		params = *req.Pagination
	}
	return paginateByPage(ctx, ds, ordering, params, transform)
}

func paginateByPage[R any, T any](ctx context.Context, ds *goqu.SelectDataset, ordering Ordering[R], params PageParams, transform func(R) T) (*Page[T], error) {
	limit := normalizeLimit(params.Limit)
	page := &Page[T]{}

	if params.Count {
		total, err := ds.CountContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count rows: %w", err)
		}
		page.TotalSize = &total
	}

	query := ds.Order(ordering.orderExpressions()...).Limit(uint(limit + 1))
	if params.Offset > 0 {
		query = query.Offset(uint(params.Offset))
	}

	var rows []R
	if err := query.ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}

	page.HasNext = len(rows) > limit
	page.Items = transformRows(rows, limit, transform)
	return page, nil
}

func paginateByCursor[R any, T any](ctx context.Context, ds *goqu.SelectDataset, ordering Ordering[R], params CursorParams, transform func(R) T) (*Page[T], error) {
	limit := normalizeLimit(params.Limit)

	if params.Cursor != "" {
		values, err := ordering.parseCursor(params.Cursor)
		if err != nil {
			return nil, err
		}
		ds = ds.Where(ordering.after(values))
	}

	var rows []R
	query := ds.Order(ordering.orderExpressions()...).Limit(uint(limit + 1))
	if err := query.ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to fetch batch: %w", err)
	}

	page := &Page[T]{HasNext: len(rows) > limit}
	page.Items = transformRows(rows, limit, transform)

	if page.HasNext {
		cursor, err := encodeCursor(ordering.valuesOf(rows[limit-1]))
		if err != nil {
			return nil, err
		}
		page.NextCursor = &cursor
	}
	return page, nil
}

func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

func transformRows[R any, T any](rows []R, limit int, transform func(R) T) []T {
	if len(rows) > limit {
		rows = rows[:limit]
	}
	items := make([]T, 0, len(rows))
	for _, row := range rows {
		items = append(items, transform(row))
	}
	return items
}

// Map converts page items while keeping the pagination metadata.
func Map[T any, U any](page *Page[T], fn func(T) U) *Page[U] {
	items := make([]U, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, fn(item))
	}

	return &Page[U]{
		Items:      items,
		HasNext:    page.HasNext,
		TotalSize:  page.TotalSize,
		NextCursor: page.NextCursor,
	}
}
