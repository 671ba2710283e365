package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type ExistenceCheckerMock struct {
	mock.Mock
}

func (m *ExistenceCheckerMock) Exists(ctx context.Context, table, column string, value any) (bool, error) {
	args := m.Called(ctx, table, column, value)
	return args.Bool(0), args.Error(1)
}
