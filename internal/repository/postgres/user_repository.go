package postgres

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/yuuuuuuu2333-collab/online-chat/internal/domain"
	"github.com/yuuuuuuu2333-collab/online-chat/internal/service"
)

const userColumns = "id, nickname, password_hash, created_at"

// UserRepository stores accounts in the users table.
type UserRepository struct {
	DB *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser inserts a new account row.
func (r *UserRepository) CreateUser(user *domain.User) error {
	_, err := r.DB.Exec(
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4)`,
		user.ID, user.Nickname, user.PasswordHash, user.CreatedAt,
	)
	return err
}

// GetUserByNickname looks an account up by nickname. A missing account
// is service.ErrUserNotFound.
func (r *UserRepository) GetUserByNickname(nickname string) (*domain.User, error) {
	return r.getUser(`SELECT `+userColumns+` FROM users WHERE nickname = $1`, nickname)
}

// GetUserByID looks an account up by its ID.
func (r *UserRepository) GetUserByID(id uuid.UUID) (*domain.User, error) {
	return r.getUser(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) getUser(query string, arg interface{}) (*domain.User, error) {
	user := &domain.User{}
	err := r.DB.QueryRow(query, arg).Scan(&user.ID, &user.Nickname, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, service.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
