package review

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/joshu-sajeev/staybook/common"
	"github.com/joshu-sajeev/staybook/internal/dto"
	"github.com/joshu-sajeev/staybook/internal/models"
)

// ReviewRepoInterface defines the contract for review persistence.
type ReviewRepoInterface interface {
	Create(ctx context.Context, review *models.Review) error
	ListByRoom(ctx context.Context, roomID uint, offset, limit int) ([]models.Review, int64, error)
}

// ReviewServiceInterface defines the review business operations. Business
// rejections are returned as a common.Failure, faults as an error.
type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, userID uint, dto *dto.ReviewCreateDTO) (common.Outcome, error)
	FetchReviews(ctx context.Context, roomID uint, page, perPage int) (common.Outcome, error)
}

// ReviewHandlerInterface defines the review HTTP handlers.
type ReviewHandlerInterface interface {
	Index(c *gin.Context)
	Store(c *gin.Context)
	Show(c *gin.Context)
	Update(c *gin.Context)
	Destroy(c *gin.Context)
}
