package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"

	"github.com/google/uuid"
)

var ErrInvalidCursor = fmt.Errorf("%w: malformed cursor", custom_error.ErrInvalidParams)

// A cursor is the base64url encoded JSON array of the ordering key values of
// the last row a client has seen.
func encodeCursor(values []interface{}) (string, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func decodeCursor(cursor string) ([]interface{}, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var values []interface{}
	if err := json.Unmarshal(raw, &values); err != nil || len(values) == 0 {
		return nil, ErrInvalidCursor
	}
	for _, value := range values {
		switch value.(type) {
		case string, float64, nil:
		default:
			return nil, ErrInvalidCursor
		}
	}
	return values, nil
}

// ValueParser checks one cursor value against the type of its sort key and
// returns the value to compare with.
type ValueParser func(raw interface{}) (interface{}, error)

func TextValue(raw interface{}) (interface{}, error) {
	value, ok := raw.(string)
	if !ok {
		return nil, ErrInvalidCursor
	}
	return value, nil
}

func UUIDValue(raw interface{}) (interface{}, error) {
	value, ok := raw.(string)
	if !ok {
		return nil, ErrInvalidCursor
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	return id.String(), nil
}

func TimeValue(raw interface{}) (interface{}, error) {
	value, ok := raw.(string)
	if !ok {
		return nil, ErrInvalidCursor
	}
	if _, err := time.Parse(time.RFC3339Nano, value); err != nil {
		return nil, ErrInvalidCursor
	}
	return value, nil
}
