package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"

	"github.com/joshu-sajeev/staybook/internal/dto"
	"github.com/joshu-sajeev/staybook/internal/models"
)

type WebhookServiceMock struct {
	mock.Mock
}

func (m *WebhookServiceMock) ActivateCard(ctx context.Context, payload *dto.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *WebhookServiceMock) ConfirmWebhookPayment(ctx context.Context, payload *dto.WebhookPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type CardActivatorMock struct {
	mock.Mock
}

func (m *CardActivatorMock) Activate(ctx context.Context, reference string, card *models.PaymentMethod) (*models.PaymentMethod, error) {
	args := m.Called(ctx, reference, card)

	method, _ := args.Get(0).(*models.PaymentMethod)
	return method, args.Error(1)
}

type BookingRepoMock struct {
	mock.Mock
}

func (m *BookingRepoMock) MarkPaid(ctx context.Context, reference string, paidAt time.Time, payment datatypes.JSON) (*models.Booking, error) {
	args := m.Called(ctx, reference, paidAt, payment)

	booking, _ := args.Get(0).(*models.Booking)
	return booking, args.Error(1)
}

type GuardMock struct {
	mock.Mock
}

func (m *GuardMock) Claim(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *GuardMock) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
