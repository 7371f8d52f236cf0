package service

import "errors"

var (
	// ErrNicknameTaken means the nickname already has a registered account.
	ErrNicknameTaken = errors.New("nickname is already taken")
	// ErrDuplicateNickname means the nickname is held by a live session.
	// It is terminal for the joining session.
	ErrDuplicateNickname = errors.New("nickname already taken by an active user")
	// ErrInvalidCredentials covers both unknown nickname and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned by user repositories for a missing account.
	ErrUserNotFound = errors.New("user not found")
	// ErrAssistantUnavailable means the assistant call failed or timed out.
	// It is never surfaced to chat members; the reply is simply dropped.
	ErrAssistantUnavailable = errors.New("assistant unavailable")
)
