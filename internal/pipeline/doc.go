// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package pipeline runs an ordered list of interceptor hooks around every
// request and is the single place where failures become HTTP responses.
//
// A Chain is mounted once, near the top of the middleware stack. For each
// request it:
//   - creates an [Exchange] and stores it in the request context;
//   - runs every Before hook in registration order, stopping at the first
//     failure;
//   - wraps the [http.ResponseWriter] so that the first WriteHeader or Write
//     runs every After hook exactly once, before the status line is sent;
//   - recovers panics into unclassified errors;
//   - on failure, runs every Error hook in registration order and then asks
//     [Translate] to write the error response.
//
// Code below the chain never writes error responses itself. It reports
// failures with [Fail], or returns them from handlers adapted by [Handle] and
// guards adapted by [Guard].
package pipeline
