package core

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// ValidationKind names the rule a provider list violated.
type ValidationKind string

const (
	DuplicateTitle ValidationKind = "duplicate_title"
	InvalidTitle   ValidationKind = "invalid_title"
)

// ValidationError reports the first provider that broke a list rule.
type ValidationError struct {
	Kind  ValidationKind
	Title string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case DuplicateTitle:
		return fmt.Sprintf(`Duplicate provider title "%s"`, e.Title)
	default:
		return fmt.Sprintf(`Invalid provider title "%s". Allowed characters "0-9a-z_.@-"`, e.Title)
	}
}

// Titled is implemented by provider records that carry a unique title.
type Titled interface {
	ProviderTitle() string
}

const providerTitleTag = "provider_title"

var providerTitleRegex = regexp.MustCompile(`^[0-9a-zA-Z_.@-]+$`)

func providerTitleValidator(fl validator.FieldLevel) bool {
	input, ok := fl.Field().Interface().(string)
	if !ok || input == "" {
		return false
	}
	return providerTitleRegex.MatchString(input)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(providerTitleTag, providerTitleValidator); err != nil {
		panic(err)
	}
	return v
}

// ValidProviderTitle reports whether title satisfies the provider title rule.
func ValidProviderTitle(title string) bool {
	return validate.Var(title, providerTitleTag) == nil
}

// CheckProviders walks providers in order and fails on the first repeated
// title or the first title outside [0-9a-zA-Z_.@-]. On success it returns the
// list re-indexed into a fresh slice.
func CheckProviders[T Titled](providers []T) ([]T, error) {
	seen := make(map[string]struct{}, len(providers))
	out := make([]T, 0, len(providers))
	for _, p := range providers {
		title := p.ProviderTitle()
		if _, dup := seen[title]; dup {
			return nil, &ValidationError{Kind: DuplicateTitle, Title: title}
		}
		if !ValidProviderTitle(title) {
			return nil, &ValidationError{Kind: InvalidTitle, Title: title}
		}
		seen[title] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}
