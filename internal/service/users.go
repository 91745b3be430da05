package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitwise74/files-api/internal/model"
	"bitwise74/files-api/internal/queue"
	"bitwise74/files-api/internal/store"
	"bitwise74/files-api/pkg/security"
	"bitwise74/files-api/pkg/util"
	"bitwise74/files-api/pkg/validators"

	"go.uber.org/zap"
)

type Users struct {
	store store.Users
	argon *security.ArgonHash
	queue queue.Enqueuer
}

func NewUsers(s store.Users, argon *security.ArgonHash, q queue.Enqueuer) *Users {
	return &Users{
		store: s,
		argon: argon,
		queue: q,
	}
}

// Register creates a new user. Email uniqueness is enforced by the store,
// a taken email yields ErrConflict.
func (u *Users) Register(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" {
		return nil, invalid(validators.ErrEmailEmpty)
	}

	if err := validators.PasswordValidator(password); err != nil {
		return nil, invalid(err)
	}

	if err := validators.EmailValidator(email); err != nil {
		return nil, invalid(err)
	}

	hash, err := u.argon.GenerateFromPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	id, err := util.NewID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user id, %w", err)
	}

	user := &model.User{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UnixMilli(),
	}

	if err := u.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrConflict
		}

		return nil, fmt.Errorf("failed to create user, %w", err)
	}

	if err := u.queue.EnqueueWelcome(ctx, queue.WelcomeJob{UserID: user.ID}); err != nil {
		zap.L().Warn("Failed to enqueue welcome job", zap.String("user_id", user.ID), zap.Error(err))
	}

	return user, nil
}

// Authenticate checks a pair of credentials. Unknown emails and wrong
// passwords both yield ErrUnauthorized.
func (u *Users) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, ErrUnauthorized
	}

	user, err := u.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthorized
		}

		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	ok, err := u.argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		zap.L().Error("Stored password hash is malformed", zap.String("user_id", user.ID), zap.Error(err))
		return nil, ErrUnauthorized
	}

	if !ok {
		return nil, ErrUnauthorized
	}

	return user, nil
}

func (u *Users) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := u.store.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch user, %w", err)
	}

	return user, nil
}

// Welcome handles the job sent after a registration
func (u *Users) Welcome(ctx context.Context, job queue.WelcomeJob) error {
	if job.UserID == "" {
		return fmt.Errorf("missing userId, %w", queue.ErrSkipRetry)
	}

	user, err := u.Get(ctx, job.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("user not found, %w", queue.ErrSkipRetry)
		}

		return err
	}

	zap.L().Info("Welcome "+user.Email, zap.String("user_id", user.ID))
	return nil
}
