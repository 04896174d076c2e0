package jsonrpc

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Call is a single decoded JSON-RPC invocation. Positional params have
// already been mapped onto the method's declared parameter names.
type Call struct {
	Method string
	params json.RawMessage
}

// Bind decodes the params into dst, runs struct validation and finally the
// Validate() hook when dst provides one. Every failure is an invalid params
// error.
func (c *Call) Bind(dst interface{}) error {
	if len(c.params) > 0 {
		decoder := json.NewDecoder(bytes.NewReader(c.params))
		if err := decoder.Decode(dst); err != nil {
			return InvalidParams(err.Error())
		}
	}

	if err := validate.Struct(dst); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			return InvalidParams(describeValidation(errs))
		}
		return InvalidParams(err.Error())
	}

	if v, ok := dst.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return InvalidParams(err.Error())
		}
	}

	return nil
}

// normalizeParams turns absent, object or positional params into an object.
func normalizeParams(raw json.RawMessage, names []string) (json.RawMessage, *Error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage("{}"), nil
	}

	switch trimmed[0] {
	case '{':
		return trimmed, nil
	case '[':
		var positional []json.RawMessage
		if err := json.Unmarshal(trimmed, &positional); err != nil {
			return nil, InvalidParams(err.Error())
		}
		if len(positional) > len(names) {
			return nil, InvalidParams("too many positional params")
		}

		named := make(map[string]json.RawMessage, len(positional))
		for i, value := range positional {
			named[names[i]] = value
		}
		encoded, err := json.Marshal(named)
		if err != nil {
			return nil, InvalidParams(err.Error())
		}
		return encoded, nil
	default:
		return nil, InvalidParams("params must be an object or an array")
	}
}
