package service

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gemstone-shop/gemstone/internal/config"
)

type passwordPolicyError struct {
	reason string
}

func (e passwordPolicyError) Error() string {
	return e.reason
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// commonPasswords is a short deny list of frequently leaked passwords.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty123":   {},
	"qwertyuiop":  {},
	"iloveyou":    {},
	"letmein1":    {},
	"welcome1":    {},
	"admin123":    {},
	"abc12345":    {},
	"sunshine":    {},
	"football":    {},
	"princess":    {},
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 {
		if len([]rune(password)) < policy.MinLength {
			return passwordPolicyError{reason: fmt.Sprintf("password must be at least %d characters", policy.MinLength)}
		}
	}

	if policy.RejectNumericOnly {
		numericOnly := len(password) > 0
		for _, r := range password {
			if !unicode.IsDigit(r) {
				numericOnly = false
				break
			}
		}
		if numericOnly {
			return passwordPolicyError{reason: "password cannot be entirely numeric"}
		}
	}

	if policy.RejectCommon {
		if _, ok := commonPasswords[strings.ToLower(password)]; ok {
			return passwordPolicyError{reason: "password is too common"}
		}
	}

	return nil
}
