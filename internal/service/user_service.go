package service

import (
	"context"
	"strings"

	"go-supermarket-inventory/internal/apperror"
	"go-supermarket-inventory/internal/model"
	"go-supermarket-inventory/internal/repository"
)

const (
	msgInvalidRole   = "Invalid role specified"
	msgUserDuplicate = "Username or email already exists"
)

type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50,username"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Password  string `json:"password" validate:"required,min=6,max=100"`
	FirstName string `json:"first_name" validate:"required,min=2,max=50,person_name"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50,person_name"`
	RoleID    uint   `json:"role_id" validate:"required,gt=0"`
}

func (r *CreateUserRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest, creator string) (*model.UserResponse, error)
}

type userService struct {
	users repository.UserRepository
	roles repository.RoleRepository
}

func NewUserService(users repository.UserRepository, roles repository.RoleRepository) UserService {
	return &userService{users: users, roles: roles}
}

func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest, creator string) (resp *model.UserResponse, err error) {
	ctx, span := startSpan(ctx, "UserService.CreateUser")
	defer func() { endSpan(span, err) }()

	req.Normalize()
	if err := validateFirst(req); err != nil {
		return nil, err
	}

	role, err := s.roles.FindByID(ctx, req.RoleID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Validation(msgInvalidRole)
		}
		return nil, wrapInternal("find role", err)
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, wrapInternal("check user", err)
	}
	if exists {
		return nil, apperror.Duplicate(msgUserDuplicate)
	}

	user := &model.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleID:    role.ID,
		IsActive:  true,
	}
	user.CreatedBy = creator
	user.UpdatedBy = creator
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		// a concurrent insert can still win the race past the pre-check
		if apperror.Is(err, apperror.KindDuplicate) {
			return nil, apperror.Duplicate(msgUserDuplicate)
		}
		return nil, wrapInternal("create user", err)
	}

	user.Role = role
	out := user.ToResponse()
	return &out, nil
}
