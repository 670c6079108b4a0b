package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-guardian/internal/app"
	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/store"
	"github.com/MKhiriev/go-guardian/internal/validators"
	"github.com/MKhiriev/go-guardian/models"
)

const msgInvalidUserID = "Invalid user ID format"

type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		validator:      validators.NewUserValidator(),
		logger:         logger,
	}
}

func (s *userService) GetUser(ctx context.Context, id string) (models.User, error) {
	if err := s.validator.Validate(ctx, id); err != nil {
		return models.User{}, app.Validation(msgInvalidUserID)
	}

	user, err := s.userRepository.FindUserByID(ctx, id)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, app.NotFound("User")
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("id", id).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// ListUsers returns one page of users ordered by creation time together with
// the total number of accounts.
func (s *userService) ListUsers(ctx context.Context, query models.ListUsersQuery) (models.UserList, error) {
	if err := s.validator.Validate(ctx, query); err != nil {
		return models.UserList{}, invalidData(err)
	}

	offset := (query.Page - 1) * query.Limit
	users, err := s.userRepository.ListUsers(ctx, offset, query.Limit)
	if err != nil {
		return models.UserList{}, fmt.Errorf("error listing users: %w", err)
	}

	total, err := s.userRepository.CountUsers(ctx)
	if err != nil {
		return models.UserList{}, fmt.Errorf("error counting users: %w", err)
	}

	if users == nil {
		users = []models.User{}
	}
	return models.UserList{Users: users, Total: total}, nil
}

// UpdateUser changes the profile fields present in req and returns the
// stored user. Changing the email to one owned by another account fails
// with Validation("Email already exists").
func (s *userService) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, id); err != nil {
		return models.User{}, app.Validation(msgInvalidUserID)
	}
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, invalidData(err)
	}

	log.Info().Str("id", id).Msg("updating user")

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	updated := req.Apply(user)
	if updated.Email != user.Email {
		_, err = s.userRepository.FindUserByEmail(ctx, updated.Email)
		switch {
		case err == nil:
			return models.User{}, app.Validation(app.MsgEmailAlreadyExists)
		case !errors.Is(err, store.ErrUserNotFound):
			log.Err(err).Str("id", id).Msg("user search by email failed")
			return models.User{}, fmt.Errorf("user search by email failed: %w", err)
		}
	}
	updated.UpdatedAt = time.Now().UTC()

	saved, err := s.userRepository.UpdateUser(ctx, updated)
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return models.User{}, app.Validation(app.MsgEmailAlreadyExists)
	case errors.Is(err, store.ErrUserNotFound):
		return models.User{}, app.NotFound("User")
	case err != nil:
		log.Err(err).Str("id", id).Msg("user update failed")
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	return saved, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, id); err != nil {
		return app.Validation(msgInvalidUserID)
	}

	log.Info().Str("id", id).Msg("deleting user")

	err := s.userRepository.DeleteUser(ctx, id)
	if errors.Is(err, store.ErrUserNotFound) {
		return app.NotFound("User")
	}
	if err != nil {
		log.Err(err).Str("id", id).Msg("user deletion failed")
		return fmt.Errorf("user deletion failed: %w", err)
	}

	return nil
}
