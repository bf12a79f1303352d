package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var uniqueNumberRegex = regexp.MustCompile(`^73\d{7}$`)

func ValidateRegister(email, password string, allowedDomains []string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, allowedDomains, errs)
	validatePassword(password, errs)

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

// ValidateUniqueNumber checks the handle shape: exactly 9 digits starting
// with the reserved 73 prefix. Shape only, no store lookup.
func ValidateUniqueNumber(number string) ValidationErrors {
	errs := make(ValidationErrors)

	number = strings.TrimSpace(number)
	if number == "" {
		errs.Add("unique_number", "Unique number is required")
	} else if !uniqueNumberRegex.MatchString(number) {
		errs.Add("unique_number", "Unique number must be 9 digits starting with 73")
	}

	return errs
}

func ValidateDisplayName(displayName string) ValidationErrors {
	errs := make(ValidationErrors)

	if len(strings.TrimSpace(displayName)) > 100 {
		errs.Add("display_name", "Display name is too long")
	}

	return errs
}

func validateEmail(email string, allowedDomains []string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
		return
	}

	for _, domain := range allowedDomains {
		if strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(domain)) {
			return
		}
	}
	errs.Add("email", fmt.Sprintf("Email must be a @%s address", strings.Join(allowedDomains, " or @")))
}

func validatePassword(password string, errs ValidationErrors) {
	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
		return
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		case unicode.IsPunct(ch) || unicode.IsSymbol(ch):
			hasSymbol = true
		}
	}

	missing := []string{}
	if !hasUpper {
		missing = append(missing, "one uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "one lowercase letter")
	}
	if !hasDigit {
		missing = append(missing, "one number")
	}
	if !hasSymbol {
		missing = append(missing, "one symbol")
	}

	if len(missing) > 0 {
		errs.Add("password", fmt.Sprintf("Password must contain at least %s", strings.Join(missing, ", ")))
	}
}
