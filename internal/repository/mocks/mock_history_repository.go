package mocks

import (
	"context"

	"docqa/internal/model"
	"docqa/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Create(ctx context.Context, rec *model.ChatRecord) (*model.ChatRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatRecord), args.Error(1)
}

func (m *MockHistoryRepository) List(ctx context.Context, hq repository.HistoryQuery) ([]model.ChatRecord, error) {
	args := m.Called(ctx, hq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatRecord), args.Error(1)
}

func (m *MockHistoryRepository) Clear(ctx context.Context, documentID *string) (int64, error) {
	args := m.Called(ctx, documentID)
	return args.Get(0).(int64), args.Error(1)
}
