package auth

import (
	"SmartShop/entity"
	"regexp"
)

var passwordRules = []struct {
	pattern *regexp.Regexp
	message string
}{
	{regexp.MustCompile(`[A-Z]`), "Password must contain at least one uppercase letter"},
	{regexp.MustCompile(`[a-z]`), "Password must contain at least one lowercase letter"},
	{regexp.MustCompile(`\d`), "Password must contain at least one number"},
	{regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`), "Password must contain at least one special character"},
}

// CheckPasswordComplexity returns the first rule the password breaks.
func CheckPasswordComplexity(password string) error {
	if len(password) < 8 {
		return entity.NewValidationError("Password must be at least 8 characters long")
	}
	for _, rule := range passwordRules {
		if !rule.pattern.MatchString(password) {
			return entity.NewValidationError(rule.message)
		}
	}
	return nil
}
