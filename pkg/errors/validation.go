package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// idShortRegex matches legal id_short values: a letter followed by letters,
// digits or underscores.
var idShortRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidateIDShort validates the short name of a referable.
// Empty names are rejected here; callers decide whether absence is legal.
func ValidateIDShort(idShort string) error {
	if idShort == "" {
		return New(ErrCodeMalformedValue, "id_short cannot be empty")
	}
	if !idShortRegex.MatchString(idShort) {
		return New(ErrCodeMalformedValue, "invalid id_short %q: must match %s", idShort, idShortRegex.String())
	}
	return nil
}

// languageRegex matches BCP 47 style language tags (RFC 3066 subset).
var languageRegex = regexp.MustCompile(`^[A-Za-z]{1,8}(-[A-Za-z0-9]{1,8})*$`)

// ValidateLanguage validates the language tag of a multi-language string.
func ValidateLanguage(lang string) error {
	if !languageRegex.MatchString(lang) {
		return New(ErrCodeMalformedValue, "invalid language tag %q", lang)
	}
	return nil
}

// mimeTypeRegex matches "type/subtype" with optional parameters.
var mimeTypeRegex = regexp.MustCompile(`^[A-Za-z0-9!#$&^_.+-]+/[A-Za-z0-9!#$&^_.+-]+(\s*;.*)?$`)

// ValidateMIMEType validates the content type of a Blob or File element.
func ValidateMIMEType(mimeType string) error {
	if mimeType == "" {
		return New(ErrCodeMalformedValue, "mime type cannot be empty")
	}
	if !mimeTypeRegex.MatchString(mimeType) {
		return New(ErrCodeMalformedValue, "invalid mime type %q", mimeType)
	}
	return nil
}

// ValidateIdentifier validates the id string of an Identifier.
// It must be non-empty and free of control characters.
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeMalformedValue, "identifier cannot be empty")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeMalformedValue, "identifier contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a file path stored in a File element or handed to a
// file store. It rejects traversal and control characters.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 2048 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 2048
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	for _, seg := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return New(ErrCodeInvalidInput, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
