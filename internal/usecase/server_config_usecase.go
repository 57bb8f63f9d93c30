package usecase

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type ServerConfigUsecase struct {
	configs repo.ServerConfigRepository
	audit   repo.AuditLogRepository
	logger  *zap.SugaredLogger
}

func NewServerConfigUsecase(configs repo.ServerConfigRepository, audit repo.AuditLogRepository, logger *zap.SugaredLogger) *ServerConfigUsecase {
	return &ServerConfigUsecase{configs: configs, audit: audit, logger: logger}
}

type ConfigEntry struct {
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

type ServerConfigOutput struct {
	Config    map[string]ConfigEntry `json:"config"`
	Timestamp time.Time              `json:"timestamp"`
}

func (u *ServerConfigUsecase) GetAll(ctx context.Context) (ServerConfigOutput, error) {
	rows, err := u.configs.ListAll(ctx)
	if err != nil {
		return ServerConfigOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make(map[string]ConfigEntry, len(rows))
	for _, row := range rows {
		out[row.Key] = ConfigEntry{
			Value:       row.Value,
			Description: row.Description,
			Type:        string(row.ConfigType),
		}
	}
	return ServerConfigOutput{Config: out, Timestamp: time.Now()}, nil
}

// UpdateValues writes a batch of settings. Only keys that already exist are
// accepted; the key set is fixed at seed time and the admin panel cannot
// grow it.
func (u *ServerConfigUsecase) UpdateValues(ctx context.Context, actorID int64, values map[string]string) error {
	if len(values) == 0 {
		return NewHTTPError(http.StatusBadRequest, "no config values provided")
	}

	for key, value := range values {
		existing, err := u.configs.FindByKey(ctx, key)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusBadRequest, "unknown config key: "+key)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		value = strings.TrimSpace(value)
		if existing.ConfigType == model.ConfigTypeNumber {
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				return NewHTTPError(http.StatusBadRequest, "config key "+key+" must be a number")
			}
		}

		if err := u.configs.UpdateValue(ctx, key, value); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, "unknown config key: "+key)
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		entry := model.AuditLog{
			ActorUserID:  actorID,
			Action:       model.AuditActionUpdateConfig,
			ResourceType: model.AuditResourceConfig,
			ResourceID:   existing.ID,
			BeforeJSON:   auditConfigValue(existing.ConfigType, existing.Value),
			AfterJSON:    auditConfigValue(existing.ConfigType, value),
		}
		if err := u.audit.Create(ctx, entry); err != nil {
			u.logger.Errorw("audit write failed", "action", entry.Action, "key", key, "error", err)
		}
	}

	return nil
}

// Password-typed values never land in the audit trail in the clear.
func auditConfigValue(t model.ConfigType, value string) string {
	if t == model.ConfigTypePassword {
		return `"***"`
	}
	return strconv.Quote(value)
}
