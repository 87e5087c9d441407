package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	wrapped := Wrap(CodeDependency, cause, "load schedule record")

	if wrapped.Code() != CodeDependency {
		t.Fatalf("unexpected code: %s", wrapped.Code())
	}
	if !errors.Is(wrapped, cause) {
		t.Fatal("expected wrapped error to match its cause")
	}
	if wrapped.Error() == "" {
		t.Fatal("expected error string")
	}
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	t.Parallel()

	inner := New(CodeConflict, "time window no longer available")
	outer := fmt.Errorf("confirm schedule: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeConflict {
		t.Fatalf("unexpected code: %s", typed.Code())
	}
	if As(errors.New("plain")) != nil {
		t.Fatal("expected nil for untyped error")
	}
}

func TestWithDetails(t *testing.T) {
	t.Parallel()

	err := New(CodeConflict, "day holds a booked window").
		WithDetails(map[string]any{"booked_windows": []string{"08:00-12:00"}})
	details, ok := err.Details().(map[string]any)
	if !ok {
		t.Fatal("expected details map")
	}
	if _, ok := details["booked_windows"]; !ok {
		t.Fatal("expected booked_windows detail")
	}
}

func TestMetadataForStatuses(t *testing.T) {
	t.Parallel()

	cases := map[Code]int{
		CodeValidation:    http.StatusBadRequest,
		CodeNotFound:      http.StatusNotFound,
		CodeConflict:      http.StatusConflict,
		CodeStateConflict: http.StatusUnprocessableEntity,
		CodeInternal:      http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := MetadataFor(code).HTTPStatus; got != want {
			t.Errorf("%s: got %d, want %d", code, got, want)
		}
	}

	if MetadataFor(Code("bogus")).HTTPStatus != http.StatusInternalServerError {
		t.Error("unknown codes fall back to 500")
	}
}
