// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the operational error model and the shared
// human-readable messages used by go-guardian handlers, guards and services.
//
// All Msg* constants are written into HTTP response bodies verbatim, so the
// wording here is part of the public API.
package app

const (
	// MsgNoTokenProvided is returned when neither the Authorization header
	// nor the accessToken cookie carries a token.
	MsgNoTokenProvided = "No token provided"

	// MsgInvalidAccessToken prefixes the verification failure reason of an
	// access token.
	MsgInvalidAccessToken = "Invalid access token"

	// MsgInvalidRefreshToken prefixes the verification failure reason of a
	// refresh token.
	MsgInvalidRefreshToken = "Invalid refresh token"

	// MsgInvalidCredentials is returned for both unknown emails and wrong
	// passwords so callers cannot enumerate accounts.
	MsgInvalidCredentials = "Invalid credentials"

	MsgAuthenticationRequired  = "Authentication required"
	MsgInsufficientPermissions = "Insufficient permissions"

	// MsgUserNotFoundForToken is returned when a valid refresh token names a
	// subject that no longer exists.
	MsgUserNotFoundForToken = "User not found"

	MsgTooManyRequests = "Too many requests, please try again later."

	// MsgInternalServerError is the only message an unclassified failure
	// ever exposes to the client.
	MsgInternalServerError = "Internal server error"

	MsgInvalidDataProvided = "Invalid data provided"
	MsgEmailAlreadyExists  = "Email already exists"

	MsgLoginSuccessful  = "Login successful"
	MsgTokenRefreshed   = "Token refreshed successfully"
	MsgLogoutSuccessful = "Logout successful"
	MsgWelcome          = "go-guardian API"
)
