package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/keilerkonzept/sortvis/internal/errors"
)

func TestRandom(t *testing.T) {
	a := Random(100, 50, 7)
	b := Random(100, 50, 7)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different data:\n%s", diff)
	}
	for i, v := range a {
		if v < 1 || v > 50 {
			t.Errorf("value %d at %d out of [1, 50]", v, i)
		}
	}
	if got := Random(0, 10, 1); len(got) != 0 {
		t.Errorf("Random(0) = %v", got)
	}
	for _, v := range Random(10, 0, 1) {
		if v != 1 {
			t.Errorf("Random with max 0 produced %d", v)
		}
	}
}

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []uint32
		wantErr bool
	}{
		{"simple", "3\n1\n2\n", []uint32{3, 1, 2}, false},
		{"blank lines and spaces", "\n  5 \n\n\t7\n", []uint32{5, 7}, false},
		{"no trailing newline", "9\n10", []uint32{9, 10}, false},
		{"empty", "", nil, false},
		{"negative", "1\n-2\n", nil, true},
		{"word", "1\nabc\n", nil, true},
		{"overflow", "4294967296\n", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input))
			if tt.wantErr {
				if !errors.Is(err, errors.KindInput) {
					t.Fatalf("Read() error = %v, want input error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read() failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Read() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadReportsLineNumber(t *testing.T) {
	_, err := Read(strings.NewReader("1\n\n2\nx3\n"))
	if err == nil || !strings.Contains(err.Error(), "line 4") {
		t.Errorf("Read() error = %v, want line 4", err)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte("4\n2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if diff := cmp.Diff([]uint32{4, 2}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, errors.KindInput) {
		t.Errorf("ReadFile(missing) = %v, want input error", err)
	}
}
