package custom_error

import "errors"

// ErrInvalidParams marks request parameter problems detected after decoding,
// e.g. mutually exclusive options or a malformed cursor. The transport reports
// anything wrapping it as a JSON-RPC invalid params error.
var ErrInvalidParams = errors.New("invalid params")
