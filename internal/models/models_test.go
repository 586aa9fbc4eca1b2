package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/watchlist/internal/shared"
)

func TestNewMovieRequest(t *testing.T) {
	tc := []struct {
		name   string
		title  string
		date   string
		fields map[string]string
	}{
		{
			name:  "valid",
			title: "Arrival",
			date:  "2016-11-11",
		},
		{
			name:   "empty title",
			title:  "",
			date:   "2016-11-11",
			fields: map[string]string{"movie_name": "Movie name is required!"},
		},
		{
			name:   "whitespace title",
			title:  "   ",
			date:   "2016-11-11",
			fields: map[string]string{"movie_name": "Movie name is required!"},
		},
		{
			name:   "empty date",
			title:  "Arrival",
			date:   "",
			fields: map[string]string{"release_date": "Release date is required!"},
		},
		{
			name:   "malformed date",
			title:  "Arrival",
			date:   "11/11/2016",
			fields: map[string]string{"release_date": "Release date must be YYYY-MM-DD!"},
		},
		{
			name:  "both missing",
			title: "",
			date:  "",
			fields: map[string]string{
				"movie_name":   "Movie name is required!",
				"release_date": "Release date is required!",
			},
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := NewMovie(tt.title, tt.date).Validate()

			if tt.fields == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var fe FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldErrors, got %v", err)
			}
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Error("expected error to wrap ErrInvalidInput")
			}
			if len(fe) != len(tt.fields) {
				t.Errorf("expected %d field errors, got %v", len(tt.fields), fe)
			}
			for field, msg := range tt.fields {
				if fe[field] != msg {
					t.Errorf("field %s: expected %q, got %q", field, msg, fe[field])
				}
			}
		})
	}

	t.Run("JSON body", func(t *testing.T) {
		data, err := json.Marshal(NewMovie(" Heat ", "1995-12-15"))
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		want := `{"movie_name":"Heat","release_date":"1995-12-15","is_watched":false}`
		if string(data) != want {
			t.Errorf("expected %s, got %s", want, data)
		}
	})

	t.Run("FieldErrors message order", func(t *testing.T) {
		fe := FieldErrors{"release_date": "b", "movie_name": "a"}
		if fe.Error() != "a b" {
			t.Errorf("expected sorted messages, got %q", fe.Error())
		}
	})
}

func TestMovie(t *testing.T) {
	t.Run("decodes backend shape", func(t *testing.T) {
		body := `{"movie_id":7,"movie_name":"Alien","release_date":"1979-05-25","is_watched":true,"created_at":"2024-03-01T10:00:00Z"}`

		var m Movie
		if err := json.Unmarshal([]byte(body), &m); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if m.ID != 7 || m.Name != "Alien" || !m.IsWatched {
			t.Errorf("unexpected movie %+v", m)
		}
	})

	t.Run("FormatDate", func(t *testing.T) {
		tc := map[string]string{
			"1979-05-25":               "May 25, 1979",
			"2024-03-01T10:00:00Z":     "Mar 1, 2024",
			"2024-03-01T10:00:00.123Z": "Mar 1, 2024",
			"2024-03-01 10:00:00":      "Mar 1, 2024",
			"someday":                  "someday",
		}
		for in, want := range tc {
			if got := FormatDate(in); got != want {
				t.Errorf("FormatDate(%q) = %q, want %q", in, got, want)
			}
		}
	})

	t.Run("CalendarDate", func(t *testing.T) {
		tc := map[string]string{
			"1979-05-25":           "1979-05-25",
			"1995-12-15T00:00:00Z": "1995-12-15",
			" 2024-03-01 10:00:00": "2024-03-01",
			"someday":              "someday",
		}
		for in, want := range tc {
			if got := CalendarDate(in); got != want {
				t.Errorf("CalendarDate(%q) = %q, want %q", in, got, want)
			}
		}
	})
}

func TestActivity(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		a := NewActivity(OpDelete, OutcomeOK, 3, "Heat", "Movie deleted")
		if err := a.Validate(); err == nil {
			t.Error("expected error without id")
		}

		a.SetID("abc")
		if err := a.Validate(); err != nil {
			t.Errorf("expected valid activity, got %v", err)
		}

		bad := NewActivity(Operation("rename"), OutcomeOK, 0, "", "")
		bad.SetID("abc")
		if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "unknown operation") {
			t.Errorf("expected unknown operation error, got %v", err)
		}
	})

	t.Run("MarshalJSON", func(t *testing.T) {
		at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		a := RestoreActivity("id-1", 4, OpFetch, 0, "", OutcomeFailed, "boom", at)

		data, err := json.Marshal(a)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}

		out := string(data)
		for _, want := range []string{`"operation":"fetch"`, `"outcome":"failed"`, `"sequence":4`, `"message":"boom"`} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %s in %s", want, out)
			}
		}
		if strings.Contains(out, "movie_id") {
			t.Errorf("expected movie_id to be omitted, got %s", out)
		}
	})
}
