package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindConfig, "configuration error"},
		{KindInput, "input error"},
		{KindRender, "render error"},
		{KindSort, "sort error"},
		{Kind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "test.Op", Context: "some context", Err: errors.New("underlying error")},
			expected: "test.Op: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "test.Op", Err: errors.New("underlying error")},
			expected: "test.Op: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestE_ContextOnly(t *testing.T) {
	err := E(Op("config.Validate"), KindConfig, "width must be > 0")
	if got, want := err.Error(), "config.Validate: width must be > 0"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !Is(err, KindConfig) {
		t.Error("expected KindConfig")
	}
}

func TestUnwrapAndKind(t *testing.T) {
	base := errors.New("boom")
	err := fmt.Errorf("wrapped: %w", PresentFailed(base))

	if !errors.Is(err, base) {
		t.Error("expected errors.Is to find the underlying error")
	}
	if GetKind(err) != KindRender {
		t.Errorf("GetKind() = %v, want %v", GetKind(err), KindRender)
	}
	if GetKind(base) != KindUnknown {
		t.Errorf("GetKind(plain) = %v, want unknown", GetKind(base))
	}
}

func TestInputMalformed(t *testing.T) {
	err := InputMalformed(3, "abc")
	if !Is(err, KindInput) {
		t.Fatal("expected KindInput")
	}
	if got, want := err.Error(), `source.Read: line 3: "abc" is not an unsigned integer`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
