package theme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey classifies fragment decoding failures caused by keys outside
// the fragment schema. Use errors.Is(err, ErrUnknownKey).
var ErrUnknownKey = errors.New("unknown fragment key")

// ErrDuplicateKey reports a key given twice in the same mapping of one
// fragment.
var ErrDuplicateKey = errors.New("duplicate fragment key")

// MissingFieldError reports a required key that no fragment set, or that the
// last fragment setting it left empty.
type MissingFieldError struct {
	Key string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Key)
}

// MalformedURLError reports a key whose value is not an absolute URL.
type MalformedURLError struct {
	Key      string
	Value    string
	Fragment string // fragment that supplied the value
	Err      error
}

func (e *MalformedURLError) Error() string {
	msg := fmt.Sprintf("%s: malformed URL %q", e.Key, e.Value)
	if e.Fragment != "" {
		msg += " from " + e.Fragment
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedURLError) Unwrap() error { return e.Err }

// UnrenderableLogoError reports a logo that failed to render or rendered
// nothing. Rendering is deterministic, so it is never retried.
type UnrenderableLogoError struct {
	Err error
}

func (e *UnrenderableLogoError) Error() string {
	return "logo: unrenderable: " + e.Err.Error()
}

func (e *UnrenderableLogoError) Unwrap() error { return e.Err }

// FragmentError reports a fragment that could not be read or decoded.
type FragmentError struct {
	Index  int
	Source string
	Err    error
}

func (e *FragmentError) Error() string {
	return fmt.Sprintf("fragment %d (%s): %v", e.Index, e.Source, e.Err)
}

func (e *FragmentError) Unwrap() error { return e.Err }

// ValidationErrors collects every validation failure of one resolution.
type ValidationErrors struct {
	errors []error
}

func (v *ValidationErrors) Add(err error) {
	if err != nil {
		v.errors = append(v.errors, err)
	}
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.errors) > 0
}

func (v *ValidationErrors) Errors() []error {
	return v.errors
}

func (v *ValidationErrors) Unwrap() []error {
	return v.errors
}

func (v *ValidationErrors) Error() string {
	var sb strings.Builder
	sb.WriteString("theme configuration invalid:")
	for _, err := range v.errors {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}
