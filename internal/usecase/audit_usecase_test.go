package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"
)

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	panic("not used in AuditLogUsecase tests")
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

func TestListAuditLogs_AppliesDefaultPaging(t *testing.T) {
	audit := new(AuditRepoMock)
	uc := usecase.NewAuditLogUsecase(audit)

	audit.On("List", mock.Anything, repo.AuditLogFilter{Limit: 50}).Return([]model.AuditLog{
		{
			ID:           1,
			ActorUserID:  3,
			Action:       model.AuditActionUpdateTheme,
			ResourceType: model.AuditResourceTheme,
			ResourceID:   5,
			AfterJSON:    `{"name":"Midnight"}`,
			CreatedAt:    time.Now(),
		},
	}, nil)

	out, err := uc.List(context.Background(), usecase.AuditLogQuery{})
	require.NoError(t, err)

	require.Len(t, out.Logs, 1)
	assert.Equal(t, "UPDATE_THEME", out.Logs[0].Action)
	assert.Equal(t, "theme", out.Logs[0].ResourceType)
	assert.Equal(t, int64(3), out.Logs[0].ActorUserID)
	audit.AssertExpectations(t)
}

func TestListAuditLogs_PassesFiltersAndCapsLimit(t *testing.T) {
	audit := new(AuditRepoMock)
	uc := usecase.NewAuditLogUsecase(audit)

	audit.On("List", mock.Anything, mock.MatchedBy(func(f repo.AuditLogFilter) bool {
		return f.Action != nil && *f.Action == model.AuditActionUpdateConfig &&
			f.ResourceType != nil && *f.ResourceType == model.AuditResourceConfig &&
			f.Limit == 200 && f.Offset == 10
	})).Return([]model.AuditLog{}, nil)

	out, err := uc.List(context.Background(), usecase.AuditLogQuery{
		Action:       "UPDATE_CONFIG",
		ResourceType: "config",
		Limit:        5000,
		Offset:       10,
	})
	require.NoError(t, err)
	assert.Empty(t, out.Logs)
	audit.AssertExpectations(t)
}

func TestListAuditLogs_RepoFailure(t *testing.T) {
	audit := new(AuditRepoMock)
	uc := usecase.NewAuditLogUsecase(audit)

	audit.On("List", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := uc.List(context.Background(), usecase.AuditLogQuery{})

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 500, he.Status)
}
