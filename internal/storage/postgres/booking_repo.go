package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/joshu-sajeev/staybook/internal/config"
	"github.com/joshu-sajeev/staybook/internal/models"
	"github.com/joshu-sajeev/staybook/internal/webhook"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

var _ webhook.BookingRepoInterface = (*BookingRepository)(nil)

// MarkPaid settles the pending booking with reference. Bookings that are
// already paid are left untouched and reported as not found.
func (r *BookingRepository) MarkPaid(ctx context.Context, reference string, paidAt time.Time, payment datatypes.JSON) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Booking{}).
			Where("reference = ? AND status = ?", reference, string(config.BookingPending)).
			Updates(map[string]any{
				"status":  string(config.BookingPaid),
				"paid_at": paidAt,
				"payment": payment,
			})
		if res.Error != nil {
			return fmt.Errorf("mark booking paid: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("mark booking paid: %w", gorm.ErrRecordNotFound)
		}

		if err := tx.First(&booking, "reference = ?", reference).Error; err != nil {
			return fmt.Errorf("get booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
