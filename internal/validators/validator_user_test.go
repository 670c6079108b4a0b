// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-guardian/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Email:     "a@x.com",
		Password:  "password1",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
}

// ---------------------------------------------------------------------------
// TestValidate_Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
	})

	t.Run("RegisterRequest value", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, validRegisterRequest()))
	})

	t.Run("RegisterRequest pointer", func(t *testing.T) {
		req := validRegisterRequest()
		require.NoError(t, v.Validate(ctx, &req))
	})

	t.Run("LoginRequest", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, models.LoginRequest{Email: "a@x.com", Password: "p"}))
	})

	t.Run("RefreshRequest", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, &models.RefreshRequest{RefreshToken: "  "}), ErrEmptyToken)
	})

	t.Run("user ID", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, "0190b8a2-7a3e-7c4d-9a1b-2f3e4d5c6b7a"))
		require.ErrorIs(t, v.Validate(ctx, "not-a-uuid"), ErrInvalidUserID)
	})
}

// ---------------------------------------------------------------------------
// TestValidate_RegisterRequest
// ---------------------------------------------------------------------------

func TestValidate_RegisterRequest(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *models.RegisterRequest)
		fields  []string
		wantErr error
	}{
		{name: "valid", mutate: func(r *models.RegisterRequest) {}},
		{name: "admin role", mutate: func(r *models.RegisterRequest) { r.Role = models.RoleAdmin }},
		{name: "empty email", mutate: func(r *models.RegisterRequest) { r.Email = "" }, wantErr: ErrInvalidEmail},
		{name: "email without at", mutate: func(r *models.RegisterRequest) { r.Email = "ax.com" }, wantErr: ErrInvalidEmail},
		{name: "email with display name", mutate: func(r *models.RegisterRequest) { r.Email = "Ada <a@x.com>" }, wantErr: ErrInvalidEmail},
		{name: "email with spaces", mutate: func(r *models.RegisterRequest) { r.Email = " a@x.com" }, wantErr: ErrInvalidEmail},
		{name: "short password", mutate: func(r *models.RegisterRequest) { r.Password = "short" }, wantErr: ErrPasswordTooShort},
		{name: "long password", mutate: func(r *models.RegisterRequest) { r.Password = strings.Repeat("a", 73) }, wantErr: ErrPasswordTooLong},
		{name: "blank first name", mutate: func(r *models.RegisterRequest) { r.FirstName = "   " }, wantErr: ErrEmptyFirstName},
		{name: "empty last name", mutate: func(r *models.RegisterRequest) { r.LastName = "" }, wantErr: ErrEmptyLastName},
		{name: "long name", mutate: func(r *models.RegisterRequest) { r.LastName = strings.Repeat("b", 101) }, wantErr: ErrNameTooLong},
		{name: "unknown role", mutate: func(r *models.RegisterRequest) { r.Role = "root" }, wantErr: ErrInvalidRole},
		{
			name:   "field scoping skips password",
			mutate: func(r *models.RegisterRequest) { r.Password = "" },
			fields: []string{FieldEmail, FieldRole},
		},
		{name: "unknown field", mutate: func(r *models.RegisterRequest) {}, fields: []string{"nickname"}, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			err := v.Validate(ctx, req, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidate_LoginRequest
// ---------------------------------------------------------------------------

func TestValidate_LoginRequest(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	// short passwords are accepted on login
	assert.NoError(t, v.Validate(ctx, models.LoginRequest{Email: "a@x.com", Password: "p"}))
	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{Email: "bad", Password: "p"}), ErrInvalidEmail)
	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{Email: "a@x.com"}), ErrEmptyPassword)
}

// ---------------------------------------------------------------------------
// TestValidate_ListUsersQuery
// ---------------------------------------------------------------------------

func TestValidate_ListUsersQuery(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		query   models.ListUsersQuery
		wantErr error
	}{
		{name: "first page", query: models.ListUsersQuery{Page: 1, Limit: 10}},
		{name: "max limit", query: models.ListUsersQuery{Page: 3, Limit: 100}},
		{name: "zero page", query: models.ListUsersQuery{Page: 0, Limit: 10}, wantErr: ErrInvalidPage},
		{name: "zero limit", query: models.ListUsersQuery{Page: 1, Limit: 0}, wantErr: ErrInvalidLimit},
		{name: "limit too large", query: models.ListUsersQuery{Page: 1, Limit: 101}, wantErr: ErrInvalidLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.query)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidate_UpdateUserRequest
// ---------------------------------------------------------------------------

func TestValidate_UpdateUserRequest(t *testing.T) {
	v := NewUserValidator()
	ctx := context.Background()
	str := func(s string) *string { return &s }

	tests := []struct {
		name    string
		req     models.UpdateUserRequest
		wantErr error
	}{
		{name: "first name only", req: models.UpdateUserRequest{FirstName: str("Grace")}},
		{name: "every field", req: models.UpdateUserRequest{Email: str("g@x.com"), FirstName: str("Grace"), LastName: str("Hopper"), Role: str(models.RoleAdmin)}},
		{name: "nothing to change", req: models.UpdateUserRequest{}, wantErr: ErrEmptyUpdate},
		{name: "invalid email", req: models.UpdateUserRequest{Email: str("nope")}, wantErr: ErrInvalidEmail},
		{name: "blank first name", req: models.UpdateUserRequest{FirstName: str("  ")}, wantErr: ErrEmptyFirstName},
		{name: "blank last name", req: models.UpdateUserRequest{LastName: str("")}, wantErr: ErrEmptyLastName},
		{name: "long last name", req: models.UpdateUserRequest{LastName: str(strings.Repeat("a", 101))}, wantErr: ErrNameTooLong},
		{name: "unknown role", req: models.UpdateUserRequest{Role: str("root")}, wantErr: ErrInvalidRole},
		{name: "empty role", req: models.UpdateUserRequest{Role: str("")}, wantErr: ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, &tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
