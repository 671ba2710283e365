package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/joshu-sajeev/staybook/internal/models"
	"github.com/joshu-sajeev/staybook/internal/review"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

var _ review.ReviewRepoInterface = (*ReviewRepository)(nil)

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// ListByRoom returns a window of a room's reviews, newest first, together
// with the total number of reviews the room has.
func (r *ReviewRepository) ListByRoom(ctx context.Context, roomID uint, offset, limit int) ([]models.Review, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("room_id = ?", roomID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Order("review_id DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, total, nil
}
