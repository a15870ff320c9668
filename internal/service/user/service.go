package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hrms-app/hrms-backend-go/internal/domain/job"
	"github.com/hrms-app/hrms-backend-go/internal/domain/user"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/cache"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/pagination"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
	cache *cache.Loader
}

func NewUserService(userRepository user.UserRepository, loader *cache.Loader) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
		cache:          loader,
	}
}

func (s *UserServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, err
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         user.Role(req.Role),
		DepartmentID: req.DepartmentID,
		Active:       true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("User created", "user_id", created.ID, "role", created.Role)
	return user.ToResponse(created), nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, page, limit int) ([]user.UserResponse, int64, error) {
	p := pagination.Normalize(page, limit)
	users, total, err := s.UserRepository.List(ctx, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}
	return responses, total, nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if err := s.UserRepository.Update(ctx, req); err != nil {
		return user.UserResponse{}, err
	}

	if req.Password != nil {
		hash, err := s.hashPassword(*req.Password)
		if err != nil {
			return user.UserResponse{}, err
		}
		if err := s.UserRepository.UpdatePassword(ctx, req.ID, hash); err != nil {
			return user.UserResponse{}, err
		}
	}

	return s.Get(ctx, req.ID)
}

// Delete implements user.UserService. Balance, applications, jobs,
// certificates and financial information go with the user, so the cached
// job list is dropped too.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.UserRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, job.UserJobsCacheKey(id))
	slog.Info("User deleted", "user_id", id)
	return nil
}
