package payment

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/joshu-sajeev/staybook/common"
	"github.com/joshu-sajeev/staybook/internal/dto"
	"github.com/joshu-sajeev/staybook/internal/models"
)

// PaymentMethodRepoInterface defines the contract for stored payment methods.
// Lookups of a method the user does not own report gorm.ErrRecordNotFound.
type PaymentMethodRepoInterface interface {
	ListActiveByUser(ctx context.Context, userID uint) ([]models.PaymentMethod, error)
	Create(ctx context.Context, method *models.PaymentMethod) error
	GetForUser(ctx context.Context, userID, id uint) (*models.PaymentMethod, error)
	Delete(ctx context.Context, method *models.PaymentMethod) error
}

// PaymentServiceInterface defines the payment method business operations.
type PaymentServiceInterface interface {
	FetchUserPaymentMethods(ctx context.Context, userID uint) (common.Outcome, error)
	AddPaymentMethod(ctx context.Context, userID uint, in *dto.PaymentMethodCreateDTO) (common.Outcome, error)
	FetchPaymentMethod(ctx context.Context, userID, id uint) (common.Outcome, error)
	DeletePaymentMethod(ctx context.Context, userID, id uint) (common.Outcome, error)
}

type PaymentHandlerInterface interface {
	Index(c *gin.Context)
	Store(c *gin.Context)
	Show(c *gin.Context)
	Update(c *gin.Context)
	Destroy(c *gin.Context)
}
