package service

import (
	"context"
	"fmt"
	"strings"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/repository"
)

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, strings.ToLower(email))
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string) (*domain.User, error) {
	firstName, lastName = strings.TrimSpace(firstName), strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", domain.ErrValidation)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.FirstName = firstName
	user.LastName = lastName
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ToggleRole flips CUSTOMER and MANAGER.
func (s *userService) ToggleRole(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	next := user.Role.Toggle()
	if err := s.users.UpdateRole(ctx, userID, next); err != nil {
		return nil, err
	}
	user.Role = next
	return user, nil
}
