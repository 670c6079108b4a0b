// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach the services.
//
// A Validator inspects one value and returns the first rule it violates.
// The optional field names restrict validation to a subset of the value's
// fields, which lets the same validator serve registration (every field)
// and login (credentials only).
package validators

import "context"

// Validator validates the provided input and optionally restricts validation
// to specific named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
