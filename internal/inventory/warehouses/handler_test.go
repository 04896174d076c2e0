package warehouses

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/reshxs/pocket-storage-backend/internal/jsonrpc"
	custom_error "github.com/reshxs/pocket-storage-backend/pkg/errors"
	"github.com/reshxs/pocket-storage-backend/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func setupRouter(repo *MockWarehouseRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	web := jsonrpc.NewEndpoint("web", nil, zap.NewNop())
	NewHandler(NewService(repo, &fakeTransactor{}, nil)).RegisterMethods(web)

	router := gin.New()
	router.POST("/rpc", web.Handle)
	return router
}

func perform(router *gin.Engine, body string) map[string]json.RawMessage {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(body)))

	var resp map[string]json.RawMessage
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func TestHandler(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		body           string
		setupMock      func(repo *MockWarehouseRepository)
		expectedResult string
		expectedError  string
	}{
		{
			name: "get warehouses",
			body: `{"jsonrpc":"2.0","id":1,"method":"get_warehouses"}`,
			setupMock: func(repo *MockWarehouseRepository) {
				repo.On("GetWarehouses", mock.Anything, noTx).Return([]models.Warehouse{{ID: id, Name: "W1"}}, nil)
			},
			expectedResult: `[{"id":"` + id.String() + `","name":"W1"}]`,
		},
		{
			name: "add duplicate",
			body: `{"jsonrpc":"2.0","id":1,"method":"add_warehouse","params":{"name":"W1"}}`,
			setupMock: func(repo *MockWarehouseRepository) {
				repo.On("PersistWarehouse", mock.Anything, mock.Anything, mock.Anything).Return(custom_error.ErrWarehouseAlreadyExists)
			},
			expectedError: `{"code":2001,"message":"Warehouse already exists"}`,
		},
		{
			name:          "add without name",
			body:          `{"jsonrpc":"2.0","id":1,"method":"add_warehouse","params":{}}`,
			setupMock:     func(repo *MockWarehouseRepository) {},
			expectedError: `{"code":-32602,"message":"Invalid params","data":[{"field":"name","rule":"required"}]}`,
		},
		{
			name: "rename missing",
			body: `{"jsonrpc":"2.0","id":1,"method":"rename_warehouse","params":{"id":"` + id.String() + `","new_name":"W2"}}`,
			setupMock: func(repo *MockWarehouseRepository) {
				repo.On("GetWarehouse", mock.Anything, mock.Anything, id, true).Return(nil, custom_error.ErrWarehouseNotFound)
			},
			expectedError: `{"code":2002,"message":"Warehouse not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockWarehouseRepository)
			tt.setupMock(repo)

			resp := perform(setupRouter(repo), tt.body)

			if tt.expectedError != "" {
				assert.JSONEq(t, tt.expectedError, string(resp["error"]))
				return
			}
			assert.JSONEq(t, tt.expectedResult, string(resp["result"]))
		})
	}
}
