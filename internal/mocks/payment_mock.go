package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/joshu-sajeev/staybook/common"
	"github.com/joshu-sajeev/staybook/internal/dto"
	"github.com/joshu-sajeev/staybook/internal/models"
)

type PaymentMethodRepoMock struct {
	mock.Mock
}

func (m *PaymentMethodRepoMock) ListActiveByUser(ctx context.Context, userID uint) ([]models.PaymentMethod, error) {
	args := m.Called(ctx, userID)

	methods, _ := args.Get(0).([]models.PaymentMethod)
	return methods, args.Error(1)
}

func (m *PaymentMethodRepoMock) Create(ctx context.Context, method *models.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *PaymentMethodRepoMock) GetForUser(ctx context.Context, userID, id uint) (*models.PaymentMethod, error) {
	args := m.Called(ctx, userID, id)

	method, _ := args.Get(0).(*models.PaymentMethod)
	return method, args.Error(1)
}

func (m *PaymentMethodRepoMock) Delete(ctx context.Context, method *models.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

type PaymentServiceMock struct {
	mock.Mock
}

func (m *PaymentServiceMock) FetchUserPaymentMethods(ctx context.Context, userID uint) (common.Outcome, error) {
	args := m.Called(ctx, userID)

	outcome, _ := args.Get(0).(common.Outcome)
	return outcome, args.Error(1)
}

func (m *PaymentServiceMock) AddPaymentMethod(ctx context.Context, userID uint, in *dto.PaymentMethodCreateDTO) (common.Outcome, error) {
	args := m.Called(ctx, userID, in)

	outcome, _ := args.Get(0).(common.Outcome)
	return outcome, args.Error(1)
}

func (m *PaymentServiceMock) FetchPaymentMethod(ctx context.Context, userID, id uint) (common.Outcome, error) {
	args := m.Called(ctx, userID, id)

	outcome, _ := args.Get(0).(common.Outcome)
	return outcome, args.Error(1)
}

func (m *PaymentServiceMock) DeletePaymentMethod(ctx context.Context, userID, id uint) (common.Outcome, error) {
	args := m.Called(ctx, userID, id)

	outcome, _ := args.Get(0).(common.Outcome)
	return outcome, args.Error(1)
}
