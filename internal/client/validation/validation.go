// Package validation checks login and registration input before anything
// is sent to the server.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field names, as used by FieldErrors.Get and FieldErrors.Clear.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

const (
	minPasswordLen = 8
	minUsernameLen = 3
	maxUsernameLen = 30
)

var (
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9+._%\-]{1,256}@[a-zA-Z0-9][a-zA-Z0-9\-]{0,64}(\.[a-zA-Z0-9][a-zA-Z0-9\-]{0,25})+$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	lowerRe    = regexp.MustCompile(`[a-z]`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	digitRe    = regexp.MustCompile(`[0-9]`)
)

// FieldErrors holds one message per invalid field; an empty string means
// the field is valid. It implements error so services can return it as is.
type FieldErrors struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (f FieldErrors) HasErrors() bool {
	return f.Username != "" || f.Email != "" || f.Password != "" || f.ConfirmPassword != ""
}

func (f FieldErrors) Error() string {
	var parts []string
	for _, p := range []struct{ name, msg string }{
		{FieldUsername, f.Username},
		{FieldEmail, f.Email},
		{FieldPassword, f.Password},
		{FieldConfirmPassword, f.ConfirmPassword},
	} {
		if p.msg != "" {
			parts = append(parts, p.name+": "+p.msg)
		}
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Get returns the message for field, or "" when it is valid or unknown.
func (f FieldErrors) Get(field string) string {
	switch field {
	case FieldUsername:
		return f.Username
	case FieldEmail:
		return f.Email
	case FieldPassword:
		return f.Password
	case FieldConfirmPassword:
		return f.ConfirmPassword
	}
	return ""
}

// Clear drops the message of one field. Unknown names are ignored.
func (f *FieldErrors) Clear(field string) {
	switch field {
	case FieldUsername:
		f.Username = ""
	case FieldEmail:
		f.Email = ""
	case FieldPassword:
		f.Password = ""
	case FieldConfirmPassword:
		f.ConfirmPassword = ""
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateLogin checks the login form. The password is only length-checked:
// existing accounts may predate the composition rules.
func ValidateLogin(email, password string) FieldErrors {
	var errs FieldErrors

	switch {
	case blank(email):
		errs.Email = "Email is required"
	case !emailRe.MatchString(strings.TrimSpace(email)):
		errs.Email = "Invalid email format"
	}

	switch {
	case blank(password):
		errs.Password = "Password is required"
	case utf8.RuneCountInString(password) < minPasswordLen:
		errs.Password = "Password must be at least 8 characters"
	}

	return errs
}

// ValidateRegister checks the registration form. Every field is checked so
// all problems are reported at once.
func ValidateRegister(username, email, password, confirmPassword string) FieldErrors {
	var errs FieldErrors

	name := strings.TrimSpace(username)
	switch {
	case name == "":
		errs.Username = "Username is required"
	case utf8.RuneCountInString(name) < minUsernameLen:
		errs.Username = "Username must be at least 3 characters"
	case utf8.RuneCountInString(name) > maxUsernameLen:
		errs.Username = "Username must be less than 30 characters"
	case !usernameRe.MatchString(name):
		errs.Username = "Username can only contain letters, numbers, underscore, and hyphen"
	}

	switch {
	case blank(email):
		errs.Email = "Email is required"
	case !emailRe.MatchString(strings.TrimSpace(email)):
		errs.Email = "Please enter a valid email address"
	}

	switch {
	case blank(password):
		errs.Password = "Password is required"
	case utf8.RuneCountInString(password) < minPasswordLen:
		errs.Password = "Password must be at least 8 characters"
	case !lowerRe.MatchString(password):
		errs.Password = "Password must contain at least one lowercase letter"
	case !upperRe.MatchString(password):
		errs.Password = "Password must contain at least one uppercase letter"
	case !digitRe.MatchString(password):
		errs.Password = "Password must contain at least one number"
	}

	if password != confirmPassword {
		errs.ConfirmPassword = "Passwords do not match"
	}

	return errs
}
