package payment

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/joshu-sajeev/staybook/common"
	"github.com/joshu-sajeev/staybook/internal/dto"
	"github.com/joshu-sajeev/staybook/internal/mocks"
	"github.com/joshu-sajeev/staybook/internal/pipeline"
	"github.com/joshu-sajeev/staybook/middleware"
)

func setupRouter(service *mocks.PaymentServiceMock, checker *mocks.ExistenceCheckerMock) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewPaymentHandler(service, pipeline.New(middleware.NewValidator(checker)))

	r := gin.New()
	r.Use(middleware.ErrorHandler(zerolog.Nop()))
	methods := r.Group("/payment-methods", middleware.RequireUser())
	methods.GET("", h.Index)
	methods.POST("", h.Store)
	methods.GET("/:id", h.Show)
	methods.PUT("/:id", h.Update)
	methods.DELETE("/:id", h.Destroy)
	return r
}

func serve(r *gin.Engine, method, url string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.UserIDHeader, "7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestPaymentHandler_Show(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		setupChecker   func(*mocks.ExistenceCheckerMock)
		setupService   func(*mocks.PaymentServiceMock)
		expectedStatus int
		expectedBody   map[string]any
	}{
		{
			name: "success outcome is written as is",
			id:   "1",
			setupChecker: func(m *mocks.ExistenceCheckerMock) {
				m.On("Exists", mock.Anything, "payment_methods", "pay_method_id", int64(1)).Return(true, nil)
			},
			setupService: func(m *mocks.PaymentServiceMock) {
				m.On("FetchPaymentMethod", mock.Anything, uint(7), uint(1)).
					Return(common.Success{Response: map[string]any{"id": 1}, Message: "ok", Code: http.StatusOK}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]any{
				"state":    true,
				"message":  "ok",
				"response": map[string]any{"id": float64(1)},
				"code":     float64(200),
			},
		},
		{
			name: "failure outcome is written as is",
			id:   "2",
			setupChecker: func(m *mocks.ExistenceCheckerMock) {
				m.On("Exists", mock.Anything, "payment_methods", "pay_method_id", int64(2)).Return(true, nil)
			},
			setupService: func(m *mocks.PaymentServiceMock) {
				m.On("FetchPaymentMethod", mock.Anything, uint(7), uint(2)).
					Return(common.Failure{Error: "X", Response: map[string]any{}, Code: http.StatusNotFound}, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody: map[string]any{
				"state":    false,
				"error":    "X",
				"response": map[string]any{},
				"code":     float64(404),
			},
		},
		{
			name:           "non numeric id never reaches the service",
			id:             "abc",
			setupChecker:   func(m *mocks.ExistenceCheckerMock) {},
			setupService:   func(m *mocks.PaymentServiceMock) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody: map[string]any{
				"state": false,
				"error": "Validation Error",
				"response": map[string]any{
					"payment_method_id": []any{"The payment method id field must be a number."},
				},
				"code": float64(422),
			},
		},
		{
			name: "unknown id",
			id:   "55",
			setupChecker: func(m *mocks.ExistenceCheckerMock) {
				m.On("Exists", mock.Anything, "payment_methods", "pay_method_id", int64(55)).Return(false, nil)
			},
			setupService:   func(m *mocks.PaymentServiceMock) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(mocks.PaymentServiceMock)
			checker := new(mocks.ExistenceCheckerMock)
			tt.setupService(service)
			tt.setupChecker(checker)

			w := serve(setupRouter(service, checker), http.MethodGet, "/payment-methods/"+tt.id, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != nil {
				assert.Equal(t, tt.expectedBody, decode(t, w))
			}
			service.AssertExpectations(t)
			checker.AssertExpectations(t)
		})
	}
}

func TestPaymentHandler_Index(t *testing.T) {
	service := new(mocks.PaymentServiceMock)
	service.On("FetchUserPaymentMethods", mock.Anything, uint(7)).
		Return(common.OK([]dto.PaymentMethodResponseDTO{}, "Payment methods fetched successfully."), nil)

	w := serve(setupRouter(service, new(mocks.ExistenceCheckerMock)), http.MethodGet, "/payment-methods", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, decode(t, w)["response"])
	service.AssertExpectations(t)
}

func TestPaymentHandler_Store(t *testing.T) {
	service := new(mocks.PaymentServiceMock)
	service.On("AddPaymentMethod", mock.Anything, uint(7), &dto.PaymentMethodCreateDTO{Email: "guest@example.com"}).
		Return(common.Created(map[string]any{"reference": "ref-1"}, "Payment method initialized."), nil)

	w := serve(
		setupRouter(service, new(mocks.ExistenceCheckerMock)),
		http.MethodPost,
		"/payment-methods",
		bytes.NewReader([]byte(`{"email":"guest@example.com"}`)),
	)

	assert.Equal(t, http.StatusCreated, w.Code)
	service.AssertExpectations(t)
}

func TestPaymentHandler_Destroy(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "deleted", expectedStatus: http.StatusOK},
		{name: "fault", serviceErr: errors.New("delete payment method: deadlock"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := new(mocks.ExistenceCheckerMock)
			checker.On("Exists", mock.Anything, "payment_methods", "pay_method_id", int64(4)).Return(true, nil)

			service := new(mocks.PaymentServiceMock)
			if tt.serviceErr != nil {
				service.On("DeletePaymentMethod", mock.Anything, uint(7), uint(4)).Return(nil, tt.serviceErr)
			} else {
				service.On("DeletePaymentMethod", mock.Anything, uint(7), uint(4)).
					Return(common.OK(map[string]any{"payment_method_id": 4}, "Payment method deleted successfully."), nil)
			}

			w := serve(setupRouter(service, checker), http.MethodDelete, "/payment-methods/4", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			service.AssertExpectations(t)
			checker.AssertExpectations(t)
		})
	}
}

func TestPaymentHandler_UpdateIsNoop(t *testing.T) {
	service := new(mocks.PaymentServiceMock)

	w := serve(setupRouter(service, new(mocks.ExistenceCheckerMock)), http.MethodPut, "/payment-methods/4", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	service.AssertExpectations(t)
}

func TestPaymentHandler_RequiresUser(t *testing.T) {
	service := new(mocks.PaymentServiceMock)
	r := setupRouter(service, new(mocks.ExistenceCheckerMock))

	req := httptest.NewRequest(http.MethodGet, "/payment-methods", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthenticated.", decode(t, w)["error"])
	service.AssertExpectations(t)
}
