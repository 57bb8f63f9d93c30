package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/validator"
)

// Bearer tokens live this long; a role change only takes effect when the
// holder logs in again. Accepted staleness tradeoff, not an oversight.
const tokenTTL = 7 * 24 * time.Hour

const bcryptCost = 10

const minPasswordLen = 6

type AuthUsecase struct {
	users     repo.UserRepository
	jwtSecret []byte
}

func NewAuthUsecase(users repo.UserRepository, jwtSecret string) *AuthUsecase {
	return &AuthUsecase{users: users, jwtSecret: []byte(jwtSecret)}
}

type UserProfile struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	RustUsername  string     `json:"rustUsername,omitempty"`
	Role          string     `json:"role"`
	VIPStatus     bool       `json:"vipStatus"`
	LoyaltyPoints int64      `json:"loyaltyPoints"`
	TotalSpent    float64    `json:"totalSpent"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	RustUsername string
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if username == "" || email == "" || in.Password == "" {
		return AuthResult{}, NewHTTPError(http.StatusBadRequest, "username, email, and password are required")
	}
	if !validator.IsUsername(username) {
		return AuthResult{}, NewHTTPError(http.StatusBadRequest, "invalid username")
	}
	if !validator.IsEmail(email) {
		return AuthResult{}, NewHTTPError(http.StatusBadRequest, "invalid email format")
	}
	if len(in.Password) < minPasswordLen {
		return AuthResult{}, NewHTTPError(http.StatusBadRequest, "password must be at least 6 characters")
	}

	taken, err := u.users.ExistsWithUsernameOrEmail(ctx, username, email, 0)
	if err != nil {
		return AuthResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if taken {
		return AuthResult{}, NewHTTPError(http.StatusConflict, "user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return AuthResult{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		RustUsername: strings.TrimSpace(in.RustUsername),
		Role:         model.RoleUser,
	}
	if err := u.users.Create(ctx, &user); err != nil {
		// The existence check raced another registration.
		if errors.Is(err, repo.ErrConflict) {
			return AuthResult{}, NewHTTPError(http.StatusConflict, "user already exists")
		}
		return AuthResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	token, err := u.issueToken(user)
	if err != nil {
		return AuthResult{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthResult{Token: token, User: toProfile(user)}, nil
}

type LoginInput struct {
	UsernameOrEmail string
	Password        string
}

// Login never reveals whether the account or the password was wrong.
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	if in.UsernameOrEmail == "" || in.Password == "" {
		return AuthResult{}, NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	user, err := u.users.FindByUsernameOrEmail(ctx, in.UsernameOrEmail)
	if errors.Is(err, repo.ErrNotFound) {
		return AuthResult{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return AuthResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthResult{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	// Best effort; a failed timestamp update must not block the login.
	_ = u.users.TouchLastLogin(ctx, user.ID)

	token, err := u.issueToken(user)
	if err != nil {
		return AuthResult{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthResult{Token: token, User: toProfile(user)}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserProfile, error) {
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserProfile{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return UserProfile{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p := toProfile(user)
	p.CreatedAt = &user.CreatedAt
	return p, nil
}

type UpdateProfileInput struct {
	Username     string
	Email        string
	RustUsername string
}

func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) error {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" {
		return NewHTTPError(http.StatusBadRequest, "username and email are required")
	}
	if !validator.IsUsername(username) {
		return NewHTTPError(http.StatusBadRequest, "invalid username")
	}
	if !validator.IsEmail(email) {
		return NewHTTPError(http.StatusBadRequest, "invalid email format")
	}

	taken, err := u.users.ExistsWithUsernameOrEmail(ctx, username, email, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if taken {
		return NewHTTPError(http.StatusConflict, "username or email already exists")
	}

	err = u.users.UpdateProfile(ctx, userID, username, email, strings.TrimSpace(in.RustUsername))
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AuthUsecase) ChangePassword(ctx context.Context, userID int64, currentPassword string, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return NewHTTPError(http.StatusBadRequest, "current password and new password are required")
	}
	if len(newPassword) < minPasswordLen {
		return NewHTTPError(http.StatusBadRequest, "new password must be at least 6 characters")
	}

	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return NewHTTPError(http.StatusUnauthorized, "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := u.users.UpdatePasswordHash(ctx, userID, string(hash)); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AuthUsecase) issueToken(user model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(u.jwtSecret)
}

func toProfile(u model.User) UserProfile {
	return UserProfile{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		RustUsername:  u.RustUsername,
		Role:          string(u.Role),
		VIPStatus:     u.VIPStatus,
		LoyaltyPoints: u.LoyaltyPoints,
		TotalSpent:    u.TotalSpent,
	}
}
