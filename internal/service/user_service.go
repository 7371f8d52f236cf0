package service

import (
	"errors"

	"github.com/yuuuuuuu2333-collab/online-chat/internal/domain"
)

// UserService provides account-related services.
type UserService struct {
	userRepo IUserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo IUserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new user account.
func (s *UserService) Register(nickname, password string) (*domain.User, error) {
	// Check if user already exists
	existingUser, err := s.userRepo.GetUserByNickname(nickname)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if existingUser != nil {
		return nil, ErrNicknameTaken
	}

	// Create new user domain object (handles password hashing)
	newUser, err := domain.NewUser(nickname, password)
	if err != nil {
		return nil, err
	}

	// Persist user
	if err := s.userRepo.CreateUser(newUser); err != nil {
		return nil, err
	}

	return newUser, nil
}

// Login authenticates a user. Unknown nickname and wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(nickname, password string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByNickname(nickname)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByNickname retrieves a user by their nickname.
func (s *UserService) GetUserByNickname(nickname string) (*domain.User, error) {
	return s.userRepo.GetUserByNickname(nickname)
}
