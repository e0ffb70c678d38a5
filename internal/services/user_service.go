package services

import (
	"fmt"
	"strings"

	"kirana/internal/models"
	"kirana/internal/repositories"
)

// UserService handles profile reads and contact-info updates.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetByID retrieves a user profile.
func (s *UserService) GetByID(id string) (*models.User, error) {
	return s.repo.GetByID(id)
}

// UpdateContact validates and persists the checkout contact fields. Phone
// needs at least 7 characters and address at least 5, both after trimming.
func (s *UserService) UpdateContact(userID, phone, address string) (*models.User, error) {
	phone = strings.TrimSpace(phone)
	address = strings.TrimSpace(address)
	if len(phone) < 7 {
		return nil, fmt.Errorf("phone number must be at least 7 characters: %w", ErrInvalidProfile)
	}
	if len(address) < 5 {
		return nil, fmt.Errorf("home address must be at least 5 characters: %w", ErrInvalidProfile)
	}

	user, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.PhoneNumber = phone
	user.HomeAddress = address
	if err := s.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
