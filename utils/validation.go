package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var (
	phoneRegex   = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
	xssPatterns  = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script.*>`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)on(load|error|click)=`),
		regexp.MustCompile(`(?i)document\.(cookie|write)`),
	}
)

// RegisterValidators adds the custom binding tags used by request structs
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine")
	}
	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
}

// ValidPhone accepts 10 to 15 digits with an optional leading +
func ValidPhone(phone string) bool {
	return phoneRegex.MatchString(strings.ReplaceAll(phone, " ", ""))
}

// SanitizeString strips HTML tags and surrounding whitespace
func SanitizeString(input string) string {
	return strings.TrimSpace(htmlTagRegex.ReplaceAllString(input, ""))
}

// NormalizeName collapses whitespace and title-cases each word
func NormalizeName(s string) string {
	words := strings.Fields(SanitizeString(s))
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// ContainsXSS checks for common XSS attack patterns
func ContainsXSS(input string) bool {
	for _, p := range xssPatterns {
		if p.MatchString(input) {
			return true
		}
	}
	return false
}

// BindingErrors turns validator errors into per-field messages
func BindingErrors(err error) interface{} {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	out := make(FieldValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
		})
	}
	return out
}
