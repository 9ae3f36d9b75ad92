package errors

import (
	"strings"
	"testing"
)

func TestValidateEntityID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "auth", false},
		{"valid uuid", "3f2a9c1e-4b7d-4e2a-9c1e-000000000001", false},
		{"valid with spaces inside", "billing core", false},
		{"valid numeric", "42", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"leading space", " auth", true},
		{"trailing space", "auth ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntityID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEntityID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateEntityID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateSearch(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"simple", "auth", false},
		{"unicode", "Zahlungsverkehr ü", false},
		{"tab allowed", "a\tb", false},
		{"null byte", "a\x00", true},
		{"newline", "a\nb", true},
		{"too long", strings.Repeat("x", 201), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSearch(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSearch(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeFileNameHint(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"graph", "graph"},
		{"Project Map", "Project-Map"},
		{"../../etc/passwd", "passwd"},
		{"dir\\file", "file"},
		{".hidden", "hidden"},
		{"", "graph"},
		{"///", "graph"},
		{"a  b!!c", "a-b-c"},
		{"snapshot.v2", "snapshot.v2"},
		{strings.Repeat("x", 80), strings.Repeat("x", 64)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFileNameHint(tt.input); got != tt.want {
				t.Errorf("SanitizeFileNameHint(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"mongodb", "mongodb://localhost:27017", false},
		{"mongodb srv", "mongodb+srv://cluster.example.net", false},
		{"redis", "redis://localhost:6379/0", false},
		{"rediss", "rediss://cache.example.net:6380", false},
		{"empty", "", true},
		{"http", "http://example.com", true},
		{"no scheme", "localhost:6379", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidDataset,
		ErrCodeInvalidViewMode,
		ErrCodeInvalidLayout,
		ErrCodeInvalidFormat,
		ErrCodeInvalidConfig,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeSourceUnavailable,
		ErrCodeSurfaceDetached,
		ErrCodeExportFailed,
		ErrCodeCache,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
