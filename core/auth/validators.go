package auth

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/spaceacademy/backoffice/core"
)

// password policy
var (
	pwdMinLen     = 8
	pwdMinLenText = "password must contain at least 8 characters"

	pwdNoSpaceText = "password must not contain whitespace"

	pwdNotAllNumText = "password cannot be entirely numeric"

	pwdMaxSim      = .7
	pwdAttrSimText = "password cannot be similar to the account email"
)

// CheckPasswordStrength applies the admin password policy: minimum length,
// no whitespace, not all-numeric, and not too similar to any of the given
// account attributes.
func CheckPasswordStrength(pwd string, attrs ...string) error {
	if len(pwd) < pwdMinLen {
		return core.NewValidationError(nil, core.FieldError{Field: "password", Error: pwdMinLenText})
	}
	if strings.IndexFunc(pwd, unicode.IsSpace) >= 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "password", Error: pwdNoSpaceText})
	}
	if allNumeric(pwd) {
		return core.NewValidationError(nil, core.FieldError{Field: "password", Error: pwdNotAllNumText})
	}
	pass := strings.ToLower(pwd)
	for _, attr := range attrs {
		attr = core.CleanString(attr, true /* lower */)
		if attr == "" {
			continue
		}
		ratio := difflib.NewMatcher(strings.Split(pass, ""), strings.Split(attr, "")).QuickRatio()
		if ratio >= pwdMaxSim {
			return core.NewValidationError(nil, core.FieldError{Field: "password", Error: pwdAttrSimText})
		}
	}
	return nil
}

func allNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
