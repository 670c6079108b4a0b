package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-guardian/models"
	"github.com/google/uuid"
)

// Field names accepted by UserValidator.Validate.
const (
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldRole      = "role"
)

const (
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72
	maxNameLength    = 100
	maxPageLimit     = 100
)

var allowedRoles = []string{models.RoleUser, models.RoleAdmin}

// UserValidator validates account payloads and user listing queries.
type UserValidator struct {
}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value)

	case models.UpdateUserRequest:
		return validateUpdateUserRequest(value)
	case *models.UpdateUserRequest:
		return validateUpdateUserRequest(*value)

	case models.RefreshRequest:
		return validateRefreshRequest(value)
	case *models.RefreshRequest:
		return validateRefreshRequest(*value)

	case models.ListUsersQuery:
		return validateListUsersQuery(value)

	case string:
		// a bare string is a user ID
		if _, err := uuid.Parse(value); err != nil {
			return ErrInvalidUserID
		}
		return nil

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegisterRequest(_ context.Context, req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldFirstName, FieldLastName, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isValidEmail(req.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if err := validatePassword(req.Password); err != nil {
				return err
			}
		case FieldFirstName:
			if err := validateName(req.FirstName, ErrEmptyFirstName); err != nil {
				return err
			}
		case FieldLastName:
			if err := validateName(req.LastName, ErrEmptyLastName); err != nil {
				return err
			}
		case FieldRole:
			// empty role defaults to user
			if req.Role != "" && !isAllowedRole(req.Role) {
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateLoginRequest only checks presence and shape. Password length rules
// are not applied so that login never reveals which policy an old password
// violates.
func (v *UserValidator) validateLoginRequest(_ context.Context, req models.LoginRequest) error {
	if !isValidEmail(req.Email) {
		return ErrInvalidEmail
	}
	if req.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}

// validateUpdateUserRequest applies the registration rules to every field
// that is present. A request changing nothing is rejected.
func validateUpdateUserRequest(req models.UpdateUserRequest) error {
	if req.Email == nil && req.FirstName == nil && req.LastName == nil && req.Role == nil {
		return ErrEmptyUpdate
	}
	if req.Email != nil && !isValidEmail(*req.Email) {
		return ErrInvalidEmail
	}
	if req.FirstName != nil {
		if err := validateName(*req.FirstName, ErrEmptyFirstName); err != nil {
			return err
		}
	}
	if req.LastName != nil {
		if err := validateName(*req.LastName, ErrEmptyLastName); err != nil {
			return err
		}
	}
	if req.Role != nil && !isAllowedRole(*req.Role) {
		return ErrInvalidRole
	}
	return nil
}

func validateRefreshRequest(req models.RefreshRequest) error {
	if strings.TrimSpace(req.RefreshToken) == "" {
		return ErrEmptyToken
	}
	return nil
}

func validateListUsersQuery(q models.ListUsersQuery) error {
	if q.Page < 1 {
		return ErrInvalidPage
	}
	if q.Limit < 1 || q.Limit > maxPageLimit {
		return ErrInvalidLimit
	}
	return nil
}

func isValidEmail(email string) bool {
	if email == "" || strings.TrimSpace(email) != email {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// reject "Name <a@b.c>" forms
	return addr.Address == email && addr.Name == ""
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

func validateName(name string, emptyErr error) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return emptyErr
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func isAllowedRole(role string) bool {
	for _, r := range allowedRoles {
		if role == r {
			return true
		}
	}
	return false
}
