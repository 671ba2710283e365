package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/joshu-sajeev/staybook/common"
	"github.com/joshu-sajeev/staybook/internal/dto"
	"github.com/joshu-sajeev/staybook/internal/models"
)

type ReviewRepoMock struct {
	mock.Mock
}

func (m *ReviewRepoMock) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *ReviewRepoMock) ListByRoom(ctx context.Context, roomID uint, offset, limit int) ([]models.Review, int64, error) {
	args := m.Called(ctx, roomID, offset, limit)

	reviews, _ := args.Get(0).([]models.Review)
	return reviews, args.Get(1).(int64), args.Error(2)
}

type ReviewServiceMock struct {
	mock.Mock
}

func (m *ReviewServiceMock) CreateReview(ctx context.Context, userID uint, in *dto.ReviewCreateDTO) (common.Outcome, error) {
	args := m.Called(ctx, userID, in)

	outcome, _ := args.Get(0).(common.Outcome)
	return outcome, args.Error(1)
}

func (m *ReviewServiceMock) FetchReviews(ctx context.Context, roomID uint, page, perPage int) (common.Outcome, error) {
	args := m.Called(ctx, roomID, page, perPage)

	outcome, _ := args.Get(0).(common.Outcome)
	return outcome, args.Error(1)
}
