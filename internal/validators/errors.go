package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
	ErrEmptyFirstName   = errors.New("first name is required")
	ErrEmptyLastName    = errors.New("last name is required")
	ErrNameTooLong      = errors.New("name must be at most 100 characters")
	ErrInvalidRole      = errors.New("role must be one of: user, admin")
	ErrEmptyPassword    = errors.New("password is required")
	ErrInvalidUserID    = errors.New("invalid user ID")
	ErrInvalidPage      = errors.New("page must be a positive integer")
	ErrInvalidLimit     = errors.New("limit must be between 1 and 100")
	ErrEmptyToken       = errors.New("refresh token is required")
	ErrEmptyUpdate      = errors.New("at least one field must be provided")
)
