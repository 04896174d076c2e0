package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const Version = "2.0"

type HandlerFunc func(ctx context.Context, call *Call) (interface{}, error)

// Authenticator guards non public methods. It returns the context the
// handler runs with, typically carrying the caller's session.
type Authenticator interface {
	Authenticate(ctx context.Context, header http.Header) (context.Context, error)
}

type method struct {
	handler HandlerFunc
	public  bool
	params  []string
}

type Option func(*method)

// Public exempts a method from authentication.
func Public() Option {
	return func(m *method) {
		m.public = true
	}
}

// Params declares the order used to map positional params onto names.
func Params(names ...string) Option {
	return func(m *method) {
		m.params = names
	}
}

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

var nullID = json.RawMessage("null")

type Endpoint struct {
	name    string
	methods map[string]*method
	auth    Authenticator
	logger  *zap.Logger
}

// NewEndpoint creates an empty method registry. A nil auth leaves every
// method public.
func NewEndpoint(name string, auth Authenticator, logger *zap.Logger) *Endpoint {
	return &Endpoint{
		name:    name,
		methods: make(map[string]*method),
		auth:    auth,
		logger:  logger.With(zap.String("endpoint", name)),
	}
}

func (e *Endpoint) Register(name string, handler HandlerFunc, opts ...Option) {
	if _, exists := e.methods[name]; exists {
		panic(fmt.Sprintf("jsonrpc: method %q registered twice on %s", name, e.name))
	}

	m := &method{handler: handler}
	for _, opt := range opts {
		opt(m)
	}
	e.methods[name] = m
}

func (e *Endpoint) Methods() []string {
	names := make([]string, 0, len(e.methods))
	for name := range e.methods {
		names = append(names, name)
	}
	return names
}

// Handle serves single and batch requests. Transport level status is always
// 200 unless nothing has to be answered.
func (e *Endpoint) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusOK, errorResponse(nullID, ParseError()))
		return
	}

	body = bytes.TrimSpace(body)
	if !json.Valid(body) {
		c.JSON(http.StatusOK, errorResponse(nullID, ParseError()))
		return
	}

	ctx := withClientIP(c.Request.Context(), c.ClientIP())
	header := c.Request.Header

	if body[0] != '[' {
		if resp := e.process(ctx, header, body); resp != nil {
			c.JSON(http.StatusOK, resp)
			return
		}
		c.Status(http.StatusNoContent)
		return
	}

	var batch []json.RawMessage
	if err := json.Unmarshal(body, &batch); err != nil || len(batch) == 0 {
		c.JSON(http.StatusOK, errorResponse(nullID, InvalidRequest("empty batch")))
		return
	}

	responses := make([]*response, 0, len(batch))
	for _, raw := range batch {
		if resp := e.process(ctx, header, raw); resp != nil {
			responses = append(responses, resp)
		}
	}

	if len(responses) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, responses)
}

// process returns nil for notifications.
func (e *Endpoint) process(ctx context.Context, header http.Header, raw json.RawMessage) *response {
	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		return errorResponse(nullID, InvalidRequest(nil))
	}

	id := req.ID
	notification := len(id) == 0
	if notification {
		id = nullID
	}

	if req.JSONRPC != Version || req.Method == "" {
		return errorResponse(id, InvalidRequest(nil))
	}

	result, rpcErr := e.invoke(ctx, header, req)
	if notification {
		return nil
	}
	if rpcErr != nil {
		return errorResponse(id, rpcErr)
	}

	return &response{JSONRPC: Version, ID: id, Result: result}
}

func (e *Endpoint) invoke(ctx context.Context, header http.Header, req request) (result json.RawMessage, rpcErr *Error) {
	start := time.Now()
	logger := e.logger.With(zap.String("method", req.Method))

	defer func() {
		if p := recover(); p != nil {
			logger.Error("jsonrpc handler panicked", zap.Any("panic", p), zap.Stack("stack"))
			result, rpcErr = nil, InternalError()
		}
	}()

	m, ok := e.methods[req.Method]
	if !ok {
		return nil, MethodNotFound(req.Method)
	}

	if !m.public && e.auth != nil {
		authCtx, err := e.auth.Authenticate(ctx, header)
		if err != nil {
			return nil, e.convert(logger, err)
		}
		ctx = authCtx
	}

	params, paramsErr := normalizeParams(req.Params, m.params)
	if paramsErr != nil {
		return nil, paramsErr
	}

	value, err := m.handler(ctx, &Call{Method: req.Method, params: params})
	if err != nil {
		return nil, e.convert(logger, err)
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		logger.Error("failed to encode jsonrpc result", zap.Error(err))
		return nil, InternalError()
	}

	logger.Debug("jsonrpc call handled", zap.Duration("duration", time.Since(start)))
	return encoded, nil
}

func (e *Endpoint) convert(logger *zap.Logger, err error) *Error {
	rpcErr, unexpected := toError(err)
	if unexpected {
		logger.Error("jsonrpc call failed", zap.Error(err))
	} else {
		logger.Debug("jsonrpc call rejected", zap.Int("code", rpcErr.Code), zap.String("message", rpcErr.Message))
	}
	return rpcErr
}

func errorResponse(id json.RawMessage, err *Error) *response {
	return &response{JSONRPC: Version, ID: id, Error: err}
}
