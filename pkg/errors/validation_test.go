package errors

import (
	"strings"
	"testing"
)

func TestValidateIDShort(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single letter", "a", false},
		{"camel case", "maxRotationSpeed", false},
		{"underscore and digits", "Prop_1", false},

		{"empty", "", true},
		{"leading digit", "1prop", true},
		{"leading underscore", "_prop", true},
		{"dash", "my-prop", true},
		{"space", "my prop", true},
		{"umlaut", "größe", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIDShort(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIDShort(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeMalformedValue) {
				t.Errorf("ValidateIDShort(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeMalformedValue)
			}
		})
	}
}

func TestValidateLanguage(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"en", false},
		{"de-DE", false},
		{"zh-Hant-TW", false},
		{"", true},
		{"en_US", true},
		{"toolonglanguage", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateLanguage(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLanguage(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMIMEType(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"application/pdf", false},
		{"text/plain; charset=utf-8", false},
		{"image/svg+xml", false},
		{"", true},
		{"pdf", true},
		{"text/", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateMIMEType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMIMEType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateIdentifier(t *testing.T) {
	if err := ValidateIdentifier("https://acplt.org/Test_Asset"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateIdentifier(""); err == nil {
		t.Error("empty identifier should be rejected")
	}
	if err := ValidateIdentifier("urn:x\n:y"); err == nil {
		t.Error("identifier with newline should be rejected")
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "docs/manual.pdf", false},
		{"absolute", "/aasx/files/manual.pdf", false},
		{"dots in name", "v1..2.pdf", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 3000), true},
		{"traversal", "docs/../../etc/passwd", true},
		{"windows traversal", "docs\\..\\secret", true},
		{"null byte", "docs\x00.pdf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
