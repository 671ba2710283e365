package webhook

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/joshu-sajeev/staybook/internal/dto"
	"github.com/joshu-sajeev/staybook/internal/models"
)

// CardActivatorInterface activates a pending payment method by its gateway
// reference. A reference with no pending method reports gorm.ErrRecordNotFound.
type CardActivatorInterface interface {
	Activate(ctx context.Context, reference string, card *models.PaymentMethod) (*models.PaymentMethod, error)
}

// BookingRepoInterface settles a pending booking by its gateway reference.
// A reference with no pending booking reports gorm.ErrRecordNotFound.
type BookingRepoInterface interface {
	MarkPaid(ctx context.Context, reference string, paidAt time.Time, payment datatypes.JSON) (*models.Booking, error)
}

// Guard makes sure one delivery per key is processed.
type Guard interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// WebhookServiceInterface holds the confirmation operations events are routed to.
type WebhookServiceInterface interface {
	ActivateCard(ctx context.Context, payload *dto.WebhookPayload) error
	ConfirmWebhookPayment(ctx context.Context, payload *dto.WebhookPayload) error
}

type WebhookHandlerInterface interface {
	Handle(c *gin.Context)
}
