package models

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar date format exchanged with the backend.
const DateLayout = "2006-01-02"

// Movie is a tracked title as returned by the backend.
type Movie struct {
	ID          int64  `json:"movie_id"`
	Name        string `json:"movie_name"`
	ReleaseDate string `json:"release_date"`
	IsWatched   bool   `json:"is_watched"`
	CreatedAt   string `json:"created_at"`
}

// NewMovieRequest is the create body. Identifiers and timestamps are assigned by the backend.
type NewMovieRequest struct {
	Name        string `json:"movie_name" validate:"required"`
	ReleaseDate string `json:"release_date" validate:"required,datetime=2006-01-02"`
	IsWatched   bool   `json:"is_watched"`
}

// MessageResponse is the body returned by create and delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewMovie builds a [NewMovieRequest] with surrounding whitespace removed.
func NewMovie(name, releaseDate string) NewMovieRequest {
	return NewMovieRequest{
		Name:        strings.TrimSpace(name),
		ReleaseDate: strings.TrimSpace(releaseDate),
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldErrors maps a JSON field name to its user-facing validation message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = f[k]
	}
	return strings.Join(msgs, " ")
}

func (f FieldErrors) Unwrap() error { return shared.ErrInvalidInput }

// Validate checks the request and returns [FieldErrors] keyed by JSON field name.
func (r NewMovieRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	fields := FieldErrors{}
	for _, fe := range ve {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.StructField() {
	case "Name":
		return "Movie name is required!"
	case "ReleaseDate":
		if fe.Tag() == "datetime" {
			return "Release date must be YYYY-MM-DD!"
		}
		return "Release date is required!"
	default:
		return fe.Error()
	}
}

var dateLayouts = []string{DateLayout, time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

// ParseDate parses the date formats the backend is known to emit.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a backend date as "Jan 2, 2006", or returns it unchanged if it cannot be parsed.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format("Jan 2, 2006")
}

// CalendarDate normalizes a backend date to [DateLayout], or returns it unchanged if it cannot be parsed.
func CalendarDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(DateLayout)
}
