package review

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/joshu-sajeev/staybook/common"
	"github.com/joshu-sajeev/staybook/internal/config"
	"github.com/joshu-sajeev/staybook/internal/dto"
	"github.com/joshu-sajeev/staybook/internal/pipeline"
	"github.com/joshu-sajeev/staybook/middleware"
)

var (
	storeRules = middleware.Rules{
		"room_id": {middleware.RuleNumeric, middleware.RuleRequired, middleware.Exists("hotel_rooms", "room_id")},
		"rating":  {middleware.RuleNumeric, middleware.RuleRequired},
		"message": {middleware.RuleString, middleware.RuleRequired},
	}

	showRules = middleware.Rules{
		"room_id": {middleware.RuleNumeric, middleware.RuleRequired, middleware.Exists("hotel_rooms", "room_id")},
		"perPage": {middleware.RuleNumeric, middleware.RuleNullable},
	}
)

type ReviewHandler struct {
	service  ReviewServiceInterface
	pipeline *pipeline.Pipeline
}

func NewReviewHandler(s ReviewServiceInterface, p *pipeline.Pipeline) *ReviewHandler {
	return &ReviewHandler{service: s, pipeline: p}
}

var _ ReviewHandlerInterface = (*ReviewHandler)(nil)

func (h *ReviewHandler) Index(c *gin.Context) {}

// Store creates a review for a room on behalf of the caller.
func (h *ReviewHandler) Store(c *gin.Context) {
	input := middleware.RequestInput(c)
	userID := middleware.UserID(c)

	h.pipeline.Handle(c, input, storeRules, func(ctx context.Context) (common.Outcome, error) {
		return h.service.CreateReview(ctx, userID, dto.NewReviewCreateDTO(input))
	})
}

// Show lists the reviews of the room in the path, one page at a time.
func (h *ReviewHandler) Show(c *gin.Context) {
	input := middleware.RequestInput(c)
	input["room_id"] = c.Param("room_id")

	h.pipeline.Handle(c, input, showRules, func(ctx context.Context) (common.Outcome, error) {
		return h.service.FetchReviews(
			ctx,
			dto.Uint(input["room_id"]),
			dto.Int(input["page"], 1),
			dto.Int(input["perPage"], config.DefaultPerPage),
		)
	})
}

func (h *ReviewHandler) Update(c *gin.Context) {}

func (h *ReviewHandler) Destroy(c *gin.Context) {}
