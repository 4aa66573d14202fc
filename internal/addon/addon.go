package addon

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Sentinel errors for add-on submission checks.
var (
	// ErrInvalid is wrapped by every field validation problem.
	ErrInvalid = errors.New("invalid add-on")
	// ErrMissingField indicates a required field is blank.
	ErrMissingField = fmt.Errorf("%w: required field missing", ErrInvalid)
	// ErrBadField indicates a field is present but malformed.
	ErrBadField = fmt.Errorf("%w: malformed field", ErrInvalid)
	// ErrNoManifest indicates an add-on package has no addon.toml.
	ErrNoManifest = errors.New("addon.toml not found in package")
)

// Addon is the stored metadata record of one add-on.
type Addon struct {
	ID             string
	Title          string
	Author         string
	Version        string
	Category       string
	Description    string
	License        string
	Released       time.Time
	Updated        time.Time
	RelatedObjects []string
}

// FieldError records a validation problem with one field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks field presence and shape. All problems are reported
// together; each one is a *FieldError wrapping ErrMissingField or ErrBadField.
func Validate(a *Addon) error {
	var errs []error
	missing := func(field, value string) bool {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, &FieldError{Field: field, Err: ErrMissingField})
			return true
		}
		return false
	}

	if !missing("id", a.ID) && !idPattern.MatchString(a.ID) {
		errs = append(errs, &FieldError{Field: "id", Err: fmt.Errorf("%w: want lowercase letters, digits and dashes", ErrBadField)})
	}
	missing("title", a.Title)
	missing("author", a.Author)
	missing("version", a.Version)
	missing("category", a.Category)
	missing("description", a.Description)

	if a.Released.IsZero() {
		errs = append(errs, &FieldError{Field: "released", Err: ErrMissingField})
	}
	if !a.Updated.IsZero() && !a.Released.IsZero() && a.Updated.Before(a.Released) {
		errs = append(errs, &FieldError{Field: "updated", Err: fmt.Errorf("%w: before release date", ErrBadField)})
	}

	return errors.Join(errs...)
}
