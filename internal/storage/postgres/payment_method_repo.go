package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/joshu-sajeev/staybook/internal/config"
	"github.com/joshu-sajeev/staybook/internal/models"
	"github.com/joshu-sajeev/staybook/internal/payment"
	"github.com/joshu-sajeev/staybook/internal/webhook"
	"github.com/joshu-sajeev/staybook/internal/worker"
)

type PaymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db}
}

var (
	_ payment.PaymentMethodRepoInterface = (*PaymentMethodRepository)(nil)
	_ webhook.CardActivatorInterface     = (*PaymentMethodRepository)(nil)
	_ worker.PendingMethodStore          = (*PaymentMethodRepository)(nil)
)

// ListActiveByUser returns the user's active methods, default first.
func (r *PaymentMethodRepository) ListActiveByUser(ctx context.Context, userID uint) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(config.PaymentMethodActive)).
		Order("is_default DESC").
		Order("activated_at DESC").
		Order("pay_method_id DESC").
		Find(&methods).Error; err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	return methods, nil
}

func (r *PaymentMethodRepository) Create(ctx context.Context, method *models.PaymentMethod) error {
	if err := r.db.WithContext(ctx).Create(method).Error; err != nil {
		return fmt.Errorf("create payment method: %w", err)
	}
	return nil
}

func (r *PaymentMethodRepository) GetForUser(ctx context.Context, userID, id uint) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := r.db.WithContext(ctx).
		First(&method, "pay_method_id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment method not found: %w", err)
		}
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	return &method, nil
}

// Delete removes method. When it was the user's default, the most recently
// activated remaining active method becomes the default.
func (r *PaymentMethodRepository) Delete(ctx context.Context, method *models.PaymentMethod) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PaymentMethod{}, method.ID).Error; err != nil {
			return fmt.Errorf("delete payment method: %w", err)
		}

		if !method.IsDefault {
			return nil
		}

		var next models.PaymentMethod
		err := tx.Where("user_id = ? AND status = ?", method.UserID, string(config.PaymentMethodActive)).
			Order("activated_at DESC").
			Order("pay_method_id DESC").
			First(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("find next default payment method: %w", err)
		}

		if err := tx.Model(&next).Update("is_default", true).Error; err != nil {
			return fmt.Errorf("promote default payment method: %w", err)
		}
		return nil
	})
}

// Activate turns the pending method with reference into an active card using
// the details in card, and makes it the user's only default.
func (r *PaymentMethodRepository) Activate(ctx context.Context, reference string, card *models.PaymentMethod) (*models.PaymentMethod, error) {
	activatedAt := time.Now()
	if card.ActivatedAt != nil {
		activatedAt = *card.ActivatedAt
	}

	var method models.PaymentMethod
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PaymentMethod{}).
			Where("reference = ? AND status = ?", reference, string(config.PaymentMethodPending)).
			Updates(map[string]any{
				"status":             string(config.PaymentMethodActive),
				"last4":              card.Last4,
				"brand":              card.Brand,
				"exp_month":          card.ExpMonth,
				"exp_year":           card.ExpYear,
				"authorization_code": card.AuthorizationCode,
				"authorization_data": card.Authorization,
				"activated_at":       activatedAt,
			})
		if res.Error != nil {
			return fmt.Errorf("activate payment method: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("activate payment method: %w", gorm.ErrRecordNotFound)
		}

		if err := tx.First(&method, "reference = ?", reference).Error; err != nil {
			return fmt.Errorf("get payment method: %w", err)
		}

		if err := tx.Model(&models.PaymentMethod{}).
			Where("user_id = ? AND pay_method_id <> ? AND is_default = ?", method.UserID, method.ID, true).
			Update("is_default", false).Error; err != nil {
			return fmt.Errorf("clear default payment method: %w", err)
		}

		if err := tx.Model(&method).Update("is_default", true).Error; err != nil {
			return fmt.Errorf("set default payment method: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &method, nil
}

// DeleteStalePending removes pending methods created before the cutoff.
func (r *PaymentMethodRepository) DeleteStalePending(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", string(config.PaymentMethodPending), before).
		Delete(&models.PaymentMethod{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete stale payment methods: %w", res.Error)
	}
	return res.RowsAffected, nil
}
