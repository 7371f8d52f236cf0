package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuuuuuuu2333-collab/online-chat/internal/domain"
)

// memUsers is an in-memory IUserRepository.
type memUsers struct {
	users map[string]*domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]*domain.User)}
}

func (m *memUsers) CreateUser(user *domain.User) error {
	m.users[user.Nickname] = user
	return nil
}

func (m *memUsers) GetUserByNickname(nickname string) (*domain.User, error) {
	user, ok := m.users[nickname]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (m *memUsers) GetUserByID(id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewUserService(newMemUsers())

	user, err := svc.Register("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Nickname)
	assert.NotEqual(t, "secret", user.PasswordHash)

	loggedIn, err := svc.Login("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestRegisterDuplicateNickname(t *testing.T) {
	svc := NewUserService(newMemUsers())

	_, err := svc.Register("alice", "secret")
	require.NoError(t, err)

	_, err = svc.Register("alice", "other")
	assert.ErrorIs(t, err, ErrNicknameTaken)
}

func TestLoginFailures(t *testing.T) {
	svc := NewUserService(newMemUsers())
	_, err := svc.Register("alice", "secret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		nickname string
		password string
	}{
		{name: "wrong password", nickname: "alice", password: "wrong"},
		{name: "unknown nickname", nickname: "nobody", password: "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(tt.nickname, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}
