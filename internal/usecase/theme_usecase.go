package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

type ThemeUsecase struct {
	themes repo.ThemeRepository
	audit  repo.AuditLogRepository
	logger *zap.SugaredLogger
}

func NewThemeUsecase(themes repo.ThemeRepository, audit repo.AuditLogRepository, logger *zap.SugaredLogger) *ThemeUsecase {
	return &ThemeUsecase{themes: themes, audit: audit, logger: logger}
}

type ThemeView struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Slug         string            `json:"slug"`
	Description  string            `json:"description,omitempty"`
	CSSVariables map[string]string `json:"cssVariables"`
	IsActive     bool              `json:"isActive"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type ThemeInput struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	CSSVariables map[string]string `json:"cssVariables"`
	IsActive     *bool             `json:"isActive"`
}

// ListActive returns the themes the storefront may offer to visitors.
func (u *ThemeUsecase) ListActive(ctx context.Context) ([]ThemeView, error) {
	themes, err := u.themes.ListActive(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toThemeViews(themes), nil
}

func (u *ThemeUsecase) ListAll(ctx context.Context) ([]ThemeView, error) {
	themes, err := u.themes.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toThemeViews(themes), nil
}

func (u *ThemeUsecase) Create(ctx context.Context, actorID int64, in ThemeInput) (ThemeView, error) {
	theme, err := themeFromInput(in)
	if err != nil {
		return ThemeView{}, err
	}

	id, err := u.themes.Create(ctx, theme)
	if errors.Is(err, repo.ErrConflict) {
		return ThemeView{}, NewHTTPError(http.StatusConflict, "theme already exists")
	}
	if err != nil {
		return ThemeView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	theme.ID = id

	u.recordAudit(ctx, actorID, model.AuditActionCreateTheme, id, model.Theme{}, theme)
	return toThemeView(theme), nil
}

func (u *ThemeUsecase) Update(ctx context.Context, actorID int64, id int64, in ThemeInput) (ThemeView, error) {
	before, err := u.themes.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ThemeView{}, NewHTTPError(http.StatusNotFound, "theme not found")
	}
	if err != nil {
		return ThemeView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	theme, err := themeFromInput(in)
	if err != nil {
		return ThemeView{}, err
	}
	theme.ID = id
	theme.CreatedAt = before.CreatedAt

	if err := u.themes.Update(ctx, theme); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return ThemeView{}, NewHTTPError(http.StatusConflict, "theme already exists")
		}
		if errors.Is(err, repo.ErrNotFound) {
			return ThemeView{}, NewHTTPError(http.StatusNotFound, "theme not found")
		}
		return ThemeView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.recordAudit(ctx, actorID, model.AuditActionUpdateTheme, id, before, theme)
	return toThemeView(theme), nil
}

func (u *ThemeUsecase) Delete(ctx context.Context, actorID int64, id int64) error {
	before, err := u.themes.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "theme not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.themes.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "theme not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.recordAudit(ctx, actorID, model.AuditActionDeleteTheme, id, before, model.Theme{})
	return nil
}

// recordAudit is best-effort: a failed audit write never fails the mutation
// it describes.
func (u *ThemeUsecase) recordAudit(ctx context.Context, actorID int64, action model.AuditAction, resourceID int64, before, after model.Theme) {
	entry := model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceTheme,
		ResourceID:   resourceID,
	}
	if before.ID != 0 {
		b, _ := json.Marshal(before)
		entry.BeforeJSON = string(b)
	}
	if after.ID != 0 {
		a, _ := json.Marshal(after)
		entry.AfterJSON = string(a)
	}
	if err := u.audit.Create(ctx, entry); err != nil {
		u.logger.Errorw("audit write failed", "action", action, "resource", resourceID, "error", err)
	}
}

func themeFromInput(in ThemeInput) (model.Theme, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(in.CSSVariables) == 0 {
		return model.Theme{}, NewHTTPError(http.StatusBadRequest, "name and css variables are required")
	}

	for key := range in.CSSVariables {
		if !strings.HasPrefix(key, "--") {
			return model.Theme{}, NewHTTPError(http.StatusBadRequest, "css variable names must start with --")
		}
	}

	raw, err := json.Marshal(in.CSSVariables)
	if err != nil {
		return model.Theme{}, NewHTTPError(http.StatusBadRequest, "invalid css variables")
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	return model.Theme{
		Name:         name,
		Slug:         slugify(name),
		Description:  strings.TrimSpace(in.Description),
		CSSVariables: string(raw),
		IsActive:     active,
	}, nil
}

func slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func toThemeView(t model.Theme) ThemeView {
	vars := map[string]string{}
	// Stored variables were validated on write; a decode failure here means
	// hand-edited rows, surfaced as an empty set rather than an error.
	_ = json.Unmarshal([]byte(t.CSSVariables), &vars)

	return ThemeView{
		ID:           t.ID,
		Name:         t.Name,
		Slug:         t.Slug,
		Description:  t.Description,
		CSSVariables: vars,
		IsActive:     t.IsActive,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toThemeViews(themes []model.Theme) []ThemeView {
	views := make([]ThemeView, 0, len(themes))
	for _, t := range themes {
		views = append(views, toThemeView(t))
	}
	return views
}
