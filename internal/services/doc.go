// Package services defines the [Service] interface for the TubeGrow backend and implements it over its REST API.
//
// # Service Interface
//
// The CLI, TUI, and renderers consume the backend only through [Service]:
// video listings, clip suggestions, render submission, and job status.
//
// # TubeGrow Implementation
//
// [TubeGrowService] authenticates with a bearer token via an [oauth2.TokenSource]
// and paces requests with [rate.Limiter] so interactive job polling stays under
// the backend's rate limits. Suggestion payloads are validated on ingest:
// malformed windows are dropped rather than failing the fetch.
//
// # Raw Access
//
// [APIService] exposes untyped GET/POST for the `clipforge api` debugging
// commands, returning status, headers, and decoded JSON when the body parses.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrAPIRequest] : transport failure or non-2xx response
//   - [shared.ErrVideoNotFound] / [shared.ErrJobNotFound] : backend 404s
//   - [shared.ErrMissingToken] : no usable credential
package services
