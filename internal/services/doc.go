// Package services defines the [MovieClient] interface for the movies backend and implements it over HTTP.
//
// # Backend Surface
//
// [MovieService] consumes three endpoints relative to a configurable base URL:
//   - GET /api/movies : JSON array of [models.Movie]
//   - POST /api/movies : body [models.NewMovieRequest], returns [models.MessageResponse]
//   - DELETE /api/movies/{id} : returns [models.MessageResponse]
//
// There is no endpoint for the watched flag; toggling is local to the tracker.
//
// # Request Handling
//
// Every request carries a generated X-Request-ID header and waits on an optional [rate.Limiter]
// before it is sent. Requests honor the caller's context for cancellation.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAPIRequest] : transport failure or non-2xx status (with the backend's message when present)
//   - [shared.ErrMovieNotFound] : DELETE returned 404
//   - [shared.ErrDecodeResponse] : the body could not be decoded
//   - [shared.ErrInvalidInput] : a create request failed client-side validation and was not sent
package services
