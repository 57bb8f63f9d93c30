package usecase

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

const (
	defaultAuditPageSize = 50
	maxAuditPageSize     = 200
)

// Read side of the admin mutation trail.
type AuditLogUsecase struct {
	audit repo.AuditLogRepository
}

func NewAuditLogUsecase(audit repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{audit: audit}
}

type AuditLogQuery struct {
	Action       string
	ResourceType string
	Limit        int
	Offset       int
}

type AuditLogView struct {
	ID           int64     `json:"id"`
	ActorUserID  int64     `json:"actorUserId"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resourceType"`
	ResourceID   int64     `json:"resourceId"`
	Before       string    `json:"before,omitempty"`
	After        string    `json:"after,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type AuditLogListOutput struct {
	Logs      []AuditLogView `json:"logs"`
	Timestamp time.Time      `json:"timestamp"`
}

func (u *AuditLogUsecase) List(ctx context.Context, q AuditLogQuery) (AuditLogListOutput, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultAuditPageSize
	}
	if limit > maxAuditPageSize {
		limit = maxAuditPageSize
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	filter := repo.AuditLogFilter{Limit: limit, Offset: offset}
	if q.Action != "" {
		action := model.AuditAction(q.Action)
		filter.Action = &action
	}
	if q.ResourceType != "" {
		resource := model.AuditResourceType(q.ResourceType)
		filter.ResourceType = &resource
	}

	logs, err := u.audit.List(ctx, filter)
	if err != nil {
		return AuditLogListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	views := make([]AuditLogView, 0, len(logs))
	for _, l := range logs {
		views = append(views, AuditLogView{
			ID:           l.ID,
			ActorUserID:  l.ActorUserID,
			Action:       string(l.Action),
			ResourceType: string(l.ResourceType),
			ResourceID:   l.ResourceID,
			Before:       l.BeforeJSON,
			After:        l.AfterJSON,
			CreatedAt:    l.CreatedAt,
		})
	}

	return AuditLogListOutput{Logs: views, Timestamp: time.Now()}, nil
}
