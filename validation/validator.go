// Package validation screens user-supplied request parameters before they
// reach the store client.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/sumitkarde03/druglaunchindia/interfaces"
)

// Pre-compiled patterns, compiled once at package initialization.
var (
	// Search input: alphanumeric plus the punctuation that appears in
	// brand names ("Dolo-650", "Coenzyme Q10+").
	searchTermRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+'()/%]+$`)

	categoryRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z\s\-]*$`)

	countryCodeRegex = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

// Substring screen for obviously hostile input. strings.Contains is much
// cheaper than a regex for these.
var dangerousPatterns = []string{
	"<script", "</script>", "javascript:", "onload=", "onerror=",
	"' or ", "\" or ", "union select", "drop table", "delete from",
	"--", "/*", "*/",
	"../", "..\\", "file://",
	"$(", "${", "`",
}

// InputValidatorImpl implements the interfaces.InputValidator contract.
type InputValidatorImpl struct{}

// NewInputValidator creates a new input validator.
func NewInputValidator() interfaces.InputValidator {
	return &InputValidatorImpl{}
}

func containsDangerousPattern(input string) bool {
	lowered := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}

// ValidateSearchTerm checks a drug search term.
func (v *InputValidatorImpl) ValidateSearchTerm(term string) error {
	term = strings.TrimSpace(term)

	if term == "" {
		return fmt.Errorf("search term cannot be empty")
	}
	if len(term) > 100 {
		return fmt.Errorf("search term too long: %d characters (max 100)", len(term))
	}
	if containsDangerousPattern(term) {
		return fmt.Errorf("search term contains invalid sequences")
	}
	if !searchTermRegex.MatchString(term) {
		return fmt.Errorf("search term contains invalid characters")
	}

	return nil
}

// ValidateCategory checks a category filter. Empty and the sentinel "all"
// are valid and mean "no filter".
func (v *InputValidatorImpl) ValidateCategory(category string) error {
	if category == "" || category == "all" {
		return nil
	}
	if len(category) > 60 {
		return fmt.Errorf("category too long: %d characters (max 60)", len(category))
	}
	if !categoryRegex.MatchString(category) {
		return fmt.Errorf("category contains invalid characters")
	}

	return nil
}

// ValidateCountryCode checks and uppercases an ISO 3166-1 alpha-3 code.
func (v *InputValidatorImpl) ValidateCountryCode(code string) (string, error) {
	code = strings.TrimSpace(code)

	if !countryCodeRegex.MatchString(code) {
		return "", fmt.Errorf("country code must be a 3-letter code, got: %q", code)
	}

	return strings.ToUpper(code), nil
}

// ValidateDrugID checks a drug identifier. Store identifiers are UUIDs;
// demo identifiers use the fixed "demo-" prefix.
func (v *InputValidatorImpl) ValidateDrugID(id string) (string, error) {
	id = strings.TrimSpace(id)

	if strings.HasPrefix(id, "demo-") {
		return id, nil
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("invalid drug id: %w", err)
	}

	return parsed.String(), nil
}
