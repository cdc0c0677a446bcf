package user

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"
)

const (
	MinPasswordLength = 8
	// minStrongClasses is how many of lower, upper, digit and symbol a strong password mixes.
	minStrongClasses = 3
)

var ErrWeakPassword = errors.New("password is not strong enough")

// HashPassword returns the lowercase hex SHA-512 digest stored in the users table.
func HashPassword(password string) string {
	sum := sha512.Sum512([]byte(password))
	return hex.EncodeToString(sum[:])
}

// StrongPassword reports whether password is long enough and mixes character classes.
func StrongPassword(password string) bool {
	if len(password) < MinPasswordLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsSpace(r):
		default:
			symbol = true
		}
	}
	classes := 0
	for _, ok := range []bool{lower, upper, digit, symbol} {
		if ok {
			classes++
		}
	}
	return classes >= minStrongClasses
}

// NewAdminInput trims the fields of an administrator account and checks them
// in the order an operator would fix them.
func NewAdminInput(lastname, firstname, username, password string) (Input, error) {
	in := Input{
		Lastname:  strings.TrimSpace(lastname),
		Firstname: strings.TrimSpace(firstname),
		Username:  strings.TrimSpace(username),
		Password:  strings.TrimSpace(password),
		Roles:     string(RoleAdmin),
	}
	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	if !StrongPassword(in.Password) {
		return Input{}, ErrWeakPassword
	}
	return in, nil
}
