package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/utkarshdubey2008/InstaPoster/internal/instagram"
	"github.com/utkarshdubey2008/InstaPoster/internal/model"
)

// Mock user repository

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, telegramID int64, telegramUsername *string) (*model.User, error) {
	args := m.Called(ctx, telegramID, telegramUsername)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) UpdateInstagram(ctx context.Context, telegramID int64, params model.UpdateInstagramParams) (*model.User, error) {
	args := m.Called(ctx, telegramID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) TouchLastUsed(ctx context.Context, telegramID int64) error {
	args := m.Called(ctx, telegramID)
	return args.Error(0)
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// Mock oauth state repository

type mockStateRepo struct {
	mock.Mock
}

func (m *mockStateRepo) Create(ctx context.Context, state string, telegramUserID int64, ttl time.Duration) error {
	args := m.Called(ctx, state, telegramUserID, ttl)
	return args.Error(0)
}

func (m *mockStateRepo) Consume(ctx context.Context, state string) (int64, bool, error) {
	args := m.Called(ctx, state)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

// Mock publish history repository

type mockHistoryRepo struct {
	mock.Mock
}

func (m *mockHistoryRepo) Create(ctx context.Context, params model.CreatePublishRecordParams) (*model.PublishRecord, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublishRecord), args.Error(1)
}

func (m *mockHistoryRepo) FindByTelegramUserID(ctx context.Context, telegramUserID int64, limit, offset int) ([]model.PublishRecord, error) {
	args := m.Called(ctx, telegramUserID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PublishRecord), args.Error(1)
}

func (m *mockHistoryRepo) CountByTelegramUserID(ctx context.Context, telegramUserID int64) (int, error) {
	args := m.Called(ctx, telegramUserID)
	return args.Int(0), args.Error(1)
}

// Mock Instagram API

type mockInstagramAPI struct {
	mock.Mock
}

func (m *mockInstagramAPI) BuildAuthURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *mockInstagramAPI) ExchangeCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *mockInstagramAPI) FetchIdentity(ctx context.Context, accessToken string) (*instagram.Identity, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*instagram.Identity), args.Error(1)
}

func (m *mockInstagramAPI) CreateContainer(ctx context.Context, accessToken, videoURL, caption string) (string, error) {
	args := m.Called(ctx, accessToken, videoURL, caption)
	return args.String(0), args.Error(1)
}

func (m *mockInstagramAPI) CheckStatus(ctx context.Context, accessToken, containerID string) (bool, error) {
	args := m.Called(ctx, accessToken, containerID)
	return args.Bool(0), args.Error(1)
}

func (m *mockInstagramAPI) Publish(ctx context.Context, accessToken, containerID string) (string, error) {
	args := m.Called(ctx, accessToken, containerID)
	return args.String(0), args.Error(1)
}
