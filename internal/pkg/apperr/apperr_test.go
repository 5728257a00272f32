package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not_found", NotFound("track_not_found", "track %s", "abc"), http.StatusNotFound},
		{"conflict", Conflict("id_in_use", "id taken"), http.StatusConflict},
		{"forbidden", Forbidden("no_access", "no progress row"), http.StatusForbidden},
		{"unauthorized", Unauthorized("bad_token", "expired"), http.StatusUnauthorized},
		{"validation", Validation("empty_submission", "no answers"), http.StatusBadRequest},
		{"store", StoreUnavailable("graph_down", errors.New("dial tcp")), http.StatusServiceUnavailable},
		{"wrapped", fmt.Errorf("outer: %w", NotFound("x", "y")), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Status(tc.err); got != tc.want {
				t.Fatalf("Status(%v)=%d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestKindMatching(t *testing.T) {
	err := NotFound("question_not_found", "question %s missing", "q1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected errors.Is(err, ErrNotFound)")
	}
	if errors.Is(err, ErrConflict) {
		t.Fatalf("did not expect conflict kind")
	}
	if CodeOf(err) != "question_not_found" {
		t.Fatalf("CodeOf=%q", CodeOf(err))
	}
	if CodeOf(errors.New("boom")) != "internal_error" {
		t.Fatalf("fallback code mismatch")
	}
}
