package service

import (
	"context"
	"strings"
	"time"

	"go-supermarket-inventory/internal/apperror"
	"go-supermarket-inventory/internal/model"
	"go-supermarket-inventory/internal/repository"

	"github.com/google/uuid"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgWrongPassword      = "Current password is incorrect"
	msgInactiveUser       = "User not found or inactive"
)

// TokenIssuer signs access tokens; *jwt.Manager satisfies it.
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, username, role string) (string, time.Time, error)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,username"`
	Password string `json:"password" validate:"required,min=6"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=100"`
}

type LoginResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      model.UserResponse `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Profile(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error)
	Roles(ctx context.Context) ([]model.RoleSummary, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error
}

type authService struct {
	users  repository.UserRepository
	roles  repository.RoleRepository
	tokens TokenIssuer
	now    Clock
}

func NewAuthService(users repository.UserRepository, roles repository.RoleRepository, tokens TokenIssuer, now Clock) AuthService {
	if now == nil {
		now = time.Now
	}
	return &authService{users: users, roles: roles, tokens: tokens, now: now}
}

// Login answers with the same error for an unknown user, an inactive user and
// a wrong password.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (resp *LoginResponse, err error) {
	ctx, span := startSpan(ctx, "AuthService.Login")
	defer func() { endSpan(span, err) }()

	req.Username = strings.TrimSpace(req.Username)
	if err := validateFirst(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Unauthorized(msgInvalidCredentials)
		}
		return nil, wrapInternal("find user", err)
	}
	if !user.IsActive || !user.CheckPassword(req.Password) {
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Username, user.RoleName())
	if err != nil {
		return nil, apperror.Internal("failed to generate token", err)
	}

	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, wrapInternal("record login", err)
	}
	user.LastLoginAt = &now

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.ToResponse(),
	}, nil
}

func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (resp *model.UserResponse, err error) {
	ctx, span := startSpan(ctx, "AuthService.Profile")
	defer func() { endSpan(span, err) }()

	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := user.ToResponse()
	if user.Role != nil {
		profile.Permissions = user.Role.Permissions
	}
	return &profile, nil
}

func (s *authService) Roles(ctx context.Context) (summaries []model.RoleSummary, err error) {
	ctx, span := startSpan(ctx, "AuthService.Roles")
	defer func() { endSpan(span, err) }()

	roles, err := s.roles.FindAll(ctx)
	if err != nil {
		return nil, wrapInternal("fetch roles", err)
	}
	summaries = make([]model.RoleSummary, len(roles))
	for i, r := range roles {
		summaries[i] = model.RoleSummary{ID: r.ID, Name: r.Name, Description: r.Description}
	}
	return summaries, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) (err error) {
	ctx, span := startSpan(ctx, "AuthService.ChangePassword")
	defer func() { endSpan(span, err) }()

	if err := validateFirst(req); err != nil {
		return err
	}

	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(req.CurrentPassword) {
		return apperror.Validation(msgWrongPassword)
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return apperror.Internal("failed to hash password", err)
	}
	return wrapInternal("update password", s.users.UpdatePassword(ctx, user.ID, user.Password))
}

// activeUser loads the token's subject. A deleted or deactivated account is
// Unauthorized even while its token has not expired.
func (s *authService) activeUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Unauthorized(msgInactiveUser)
		}
		return nil, wrapInternal("find user", err)
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized(msgInactiveUser)
	}
	return user, nil
}

// Authorize reports whether role is one of allowed. Names compare
// case-insensitively, so "Gerente" matches GERENTE.
func Authorize(role string, allowed ...string) bool {
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(role), a) {
			return true
		}
	}
	return false
}
