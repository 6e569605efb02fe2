package validate

import (
	"strings"
)

// Login checks the login form.
func Login(email, password string) Errors {
	errs := Errors{}
	if strings.TrimSpace(email) == "" {
		errs.Add("email", "email is required")
	}
	if password == "" {
		errs.Add("password", "password is required")
	}
	return errs
}

// Register checks the registration form.
func Register(username, email, password, confirm string, agreeTerms bool) Errors {
	errs := Errors{}
	switch {
	case strings.TrimSpace(username) == "":
		errs.Add("username", "username is required")
	case !Username(username):
		errs.Add("username", "at least 3 characters: letters, digits and underscores only")
	}
	checkEmail(errs, email)
	checkNewPassword(errs, "password", password, confirm)
	if !agreeTerms {
		errs.Add("terms", "you must accept the terms")
	}
	return errs
}

// ForgotPassword checks the reset request form.
func ForgotPassword(email string) Errors {
	errs := Errors{}
	checkEmail(errs, email)
	return errs
}

// PasswordChange checks the change-password form.
func PasswordChange(current, next, confirm string) Errors {
	errs := Errors{}
	if current == "" {
		errs.Add("current_password", "current password is required")
	}
	checkNewPassword(errs, "new_password", next, confirm)
	return errs
}

// Comment checks a comment body.
func Comment(content string) Errors {
	errs := Errors{}
	if strings.TrimSpace(content) == "" {
		errs.Add("content", "comment cannot be empty")
	}
	return errs
}

// Profile checks the profile form. Every field is optional; a github value
// must not contain spaces.
func Profile(motto, github, google string) Errors {
	errs := Errors{}
	if strings.ContainsAny(strings.TrimSpace(github), " \t") {
		errs.Add("github", "github account cannot contain spaces")
	}
	if g := strings.TrimSpace(google); g != "" && !Email(g) {
		errs.Add("google_account", "google account must be an email address")
	}
	if len([]rune(motto)) > 200 {
		errs.Add("motto", "motto is limited to 200 characters")
	}
	return errs
}

func checkEmail(errs Errors, email string) {
	switch {
	case strings.TrimSpace(email) == "":
		errs.Add("email", "email is required")
	case !Email(email):
		errs.Add("email", "enter a valid email address")
	}
}

func checkNewPassword(errs Errors, field, password, confirm string) {
	switch {
	case password == "":
		errs.Add(field, "password is required")
	case !Password(password):
		errs.Add(field, "password must be at least 6 characters")
	}
	if password != confirm {
		errs.Add("confirm_password", "passwords do not match")
	}
}
