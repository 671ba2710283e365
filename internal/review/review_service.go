package review

import (
	"context"
	"errors"
	"net/http"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/joshu-sajeev/staybook/common"
	"github.com/joshu-sajeev/staybook/internal/config"
	"github.com/joshu-sajeev/staybook/internal/dto"
	"github.com/joshu-sajeev/staybook/internal/models"
)

type ReviewService struct {
	repo ReviewRepoInterface
}

func NewReviewService(repo ReviewRepoInterface) *ReviewService {
	return &ReviewService{repo: repo}
}

var _ ReviewServiceInterface = (*ReviewService)(nil)

// CreateReview stores a review written by userID. The input has already been
// validated for presence and type; the rating range is a business rule.
func (s *ReviewService) CreateReview(ctx context.Context, userID uint, in *dto.ReviewCreateDTO) (common.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return timedOut(), nil
	}

	if in.Rating < 1 || in.Rating > 5 {
		return common.Fail(
			http.StatusUnprocessableEntity,
			"Rating must be between 1 and 5.",
			map[string][]string{"rating": {"The rating must be between 1 and 5."}},
		), nil
	}

	review := models.Review{
		RoomID:  in.RoomID,
		UserID:  userID,
		Rating:  in.Rating,
		Message: in.Message,
	}

	if err := s.repo.Create(ctx, &review); err != nil {
		if canceled(err) {
			return timedOut(), nil
		}
		return nil, pkgerrors.WithStack(err)
	}

	zerolog.Ctx(ctx).Info().
		Uint("review_id", review.ID).
		Uint("room_id", review.RoomID).
		Msg("review created")

	return common.Created(toResponse(review), "Review created successfully."), nil
}

// FetchReviews returns one page of a room's reviews, newest first.
func (s *ReviewService) FetchReviews(ctx context.Context, roomID uint, page, perPage int) (common.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return timedOut(), nil
	}

	switch {
	case page < 1:
		page = 1
	case page > config.MaxPage:
		page = config.MaxPage
	}
	switch {
	case perPage < 1:
		perPage = config.DefaultPerPage
	case perPage > config.MaxPerPage:
		perPage = config.MaxPerPage
	}

	reviews, total, err := s.repo.ListByRoom(ctx, roomID, (page-1)*perPage, perPage)
	if err != nil {
		if canceled(err) {
			return timedOut(), nil
		}
		return nil, pkgerrors.WithStack(err)
	}

	dtos := make([]dto.ReviewResponseDTO, len(reviews))
	for i, r := range reviews {
		dtos[i] = toResponse(r)
	}

	return common.OK(dto.NewPage(dtos, page, perPage, total), "Reviews fetched successfully."), nil
}

func toResponse(r models.Review) dto.ReviewResponseDTO {
	return dto.ReviewResponseDTO{
		ID:        r.ID,
		RoomID:    r.RoomID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func canceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func timedOut() common.Failure {
	return common.Fail(http.StatusRequestTimeout, "request timed out", nil)
}
