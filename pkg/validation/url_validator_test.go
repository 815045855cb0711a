package validation

import (
	"testing"

	apperrors "go-dental-annotator/internal/errors"
)

func TestURLValidator_Validate(t *testing.T) {
	v := NewURLValidator()

	cases := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid http", "http://example.com/radiograph.png", false},
		{"valid https", "https://example.com/scans/42.jpg", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"unsupported scheme", "ftp://example.com/scan.png", true},
		{"file scheme", "file:///etc/passwd", true},
		{"missing host", "http:///radiograph.png", true},
		{"relative path", "scans/42.jpg", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.url)
			if tc.wantErr && err == nil {
				t.Errorf("Expected error for %q", tc.url)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Unexpected error for %q: %v", tc.url, err)
			}
			if tc.wantErr && err != nil && !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
				t.Errorf("Expected validation error type for %q, got %v", tc.url, err)
			}
		})
	}
}

func TestURLValidator_HostAllowlist(t *testing.T) {
	v := NewURLValidatorWithOptions([]string{"https"}, []string{"pacs.example.com"})

	if err := v.Validate("https://pacs.example.com/scan.png"); err != nil {
		t.Errorf("Expected allowlisted host to pass, got %v", err)
	}
	if err := v.Validate("https://other.example.com/scan.png"); err == nil {
		t.Error("Expected non-allowlisted host to fail")
	}
	if err := v.Validate("http://pacs.example.com/scan.png"); err == nil {
		t.Error("Expected disallowed scheme to fail")
	}
}
