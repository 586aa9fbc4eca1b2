// Package models defines the domain types of the watchlist client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): structs exchanged with the movies backend
//   - [Movie] : A tracked title as returned by GET /api/movies
//   - [NewMovieRequest] : The body sent by POST /api/movies, validated client side
//   - [MessageResponse] : The {message} body returned by create and delete
//
// 2. Persistent Entities: rows in the local activity journal
//   - [Activity] : One recorded operation outcome (fetch, create, delete, toggle)
//
// Persistent entities implement the [Model] interface and are stored through a [Repository].
package models
