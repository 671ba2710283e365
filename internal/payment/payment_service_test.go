package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/joshu-sajeev/staybook/common"
	"github.com/joshu-sajeev/staybook/internal/dto"
	"github.com/joshu-sajeev/staybook/internal/mocks"
	"github.com/joshu-sajeev/staybook/internal/models"
)

func TestPaymentService_AddPaymentMethod(t *testing.T) {
	tests := []struct {
		name         string
		in           *dto.PaymentMethodCreateDTO
		setupMock    func(*mocks.PaymentMethodRepoMock)
		wantErr      bool
		expectedCode int
		assertResult func(*testing.T, common.Outcome)
	}{
		{
			name: "pending method created",
			in:   &dto.PaymentMethodCreateDTO{Email: "guest@example.com"},
			setupMock: func(m *mocks.PaymentMethodRepoMock) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(pm *models.PaymentMethod) bool {
					_, err := uuid.Parse(pm.Reference)
					return err == nil && pm.UserID == 7 && pm.Status == "pending" && pm.Email == "guest@example.com"
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*models.PaymentMethod).ID = 3
				}).Return(nil)
			},
			expectedCode: http.StatusCreated,
			assertResult: func(t *testing.T, o common.Outcome) {
				created := o.(common.Success).Response.(dto.PaymentMethodInitDTO)
				assert.Equal(t, uint(3), created.PaymentMethodID)
				assert.Equal(t, map[string]string{"todo": "addPaymentMethod"}, created.Metadata)
			},
		},
		{
			name:         "missing email",
			in:           &dto.PaymentMethodCreateDTO{},
			setupMock:    func(m *mocks.PaymentMethodRepoMock) {},
			expectedCode: http.StatusUnprocessableEntity,
			assertResult: func(t *testing.T, o common.Outcome) {
				failure := o.(common.Failure)
				assert.Equal(t, "Validation Error", failure.Error)
				assert.Equal(t, map[string][]string{"email": {"The email field is required."}}, failure.Response)
			},
		},
		{
			name:         "malformed email",
			in:           &dto.PaymentMethodCreateDTO{Email: "not-an-email"},
			setupMock:    func(m *mocks.PaymentMethodRepoMock) {},
			expectedCode: http.StatusUnprocessableEntity,
			assertResult: func(t *testing.T, o common.Outcome) {
				assert.Equal(t,
					map[string][]string{"email": {"The email field must be a valid email address."}},
					o.(common.Failure).Response,
				)
			},
		},
		{
			name: "repository fault",
			in:   &dto.PaymentMethodCreateDTO{Email: "guest@example.com"},
			setupMock: func(m *mocks.PaymentMethodRepoMock) {
				m.On("Create", mock.Anything, mock.Anything).Return(errors.New("create payment method: duplicate key"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.PaymentMethodRepoMock)
			tt.setupMock(repo)

			outcome, err := NewPaymentService(repo).AddPaymentMethod(context.Background(), 7, tt.in)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				switch o := outcome.(type) {
				case common.Success:
					assert.Equal(t, tt.expectedCode, o.Code)
				case common.Failure:
					assert.Equal(t, tt.expectedCode, o.Code)
				}
				tt.assertResult(t, outcome)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestPaymentService_FetchPaymentMethod(t *testing.T) {
	tests := []struct {
		name         string
		setupMock    func(*mocks.PaymentMethodRepoMock)
		wantErr      bool
		expectedCode int
	}{
		{
			name: "owned method",
			setupMock: func(m *mocks.PaymentMethodRepoMock) {
				m.On("GetForUser", mock.Anything, uint(7), uint(2)).
					Return(&models.PaymentMethod{ID: 2, UserID: 7, Status: "active", Last4: "4081"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "not owned by the caller",
			setupMock: func(m *mocks.PaymentMethodRepoMock) {
				m.On("GetForUser", mock.Anything, uint(7), uint(2)).
					Return(nil, fmt.Errorf("get payment method: %w", gorm.ErrRecordNotFound))
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "deadline exceeded",
			setupMock: func(m *mocks.PaymentMethodRepoMock) {
				m.On("GetForUser", mock.Anything, uint(7), uint(2)).
					Return(nil, fmt.Errorf("get payment method: %w", context.DeadlineExceeded))
			},
			expectedCode: http.StatusRequestTimeout,
		},
		{
			name: "repository fault",
			setupMock: func(m *mocks.PaymentMethodRepoMock) {
				m.On("GetForUser", mock.Anything, uint(7), uint(2)).
					Return(nil, errors.New("get payment method: connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.PaymentMethodRepoMock)
			tt.setupMock(repo)

			outcome, err := NewPaymentService(repo).FetchPaymentMethod(context.Background(), 7, 2)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, outcome)
			} else {
				require.NoError(t, err)
				switch o := outcome.(type) {
				case common.Success:
					assert.Equal(t, tt.expectedCode, o.Code)
					assert.Equal(t, "4081", o.Response.(dto.PaymentMethodResponseDTO).Last4)
				case common.Failure:
					assert.Equal(t, tt.expectedCode, o.Code)
				}
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestPaymentService_DeletePaymentMethod(t *testing.T) {
	method := &models.PaymentMethod{ID: 4, UserID: 7, Status: "active", IsDefault: true}

	t.Run("deleted", func(t *testing.T) {
		repo := new(mocks.PaymentMethodRepoMock)
		repo.On("GetForUser", mock.Anything, uint(7), uint(4)).Return(method, nil)
		repo.On("Delete", mock.Anything, method).Return(nil)

		outcome, err := NewPaymentService(repo).DeletePaymentMethod(context.Background(), 7, 4)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, outcome.(common.Success).Code)
		repo.AssertExpectations(t)
	})

	t.Run("not found skips delete", func(t *testing.T) {
		repo := new(mocks.PaymentMethodRepoMock)
		repo.On("GetForUser", mock.Anything, uint(7), uint(4)).Return(nil, gorm.ErrRecordNotFound)

		outcome, err := NewPaymentService(repo).DeletePaymentMethod(context.Background(), 7, 4)

		require.NoError(t, err)
		assert.Equal(t, common.Fail(http.StatusNotFound, "Payment method not found.", nil), outcome)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("delete fault", func(t *testing.T) {
		repo := new(mocks.PaymentMethodRepoMock)
		repo.On("GetForUser", mock.Anything, uint(7), uint(4)).Return(method, nil)
		repo.On("Delete", mock.Anything, method).Return(errors.New("delete payment method: lock timeout"))

		_, err := NewPaymentService(repo).DeletePaymentMethod(context.Background(), 7, 4)

		assert.Error(t, err)
	})
}

func TestPaymentService_FetchUserPaymentMethods(t *testing.T) {
	repo := new(mocks.PaymentMethodRepoMock)
	repo.On("ListActiveByUser", mock.Anything, uint(7)).Return([]models.PaymentMethod{
		{ID: 1, UserID: 7, Status: "active", IsDefault: true},
		{ID: 2, UserID: 7, Status: "active"},
	}, nil)

	outcome, err := NewPaymentService(repo).FetchUserPaymentMethods(context.Background(), 7)

	require.NoError(t, err)
	success := outcome.(common.Success)
	assert.Equal(t, http.StatusOK, success.Code)
	assert.Len(t, success.Response, 2)
	repo.AssertExpectations(t)
}
