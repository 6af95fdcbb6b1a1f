package common

import (
	"errors"
	"regexp"
	"strings"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_ ]+$`)

// ValidatePostContent enforces the wall posting rules: a post needs text or
// media, and text may not contain links.
func ValidatePostContent(content string, hasMedia bool) error {
	if strings.TrimSpace(content) == "" && !hasMedia {
		return ErrEmptyPost
	}

	if strings.Contains(content, "http") {
		return ErrLinksNotAllowed
	}

	return nil
}

func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 50 {
		return errors.New("name must be between 2 and 50 characters")
	}

	if !nameRegex.MatchString(name) {
		return errors.New("name can only contain letters, numbers, spaces and underscores")
	}

	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("password must be atleast 6 characters long")
	}

	if len(password) > 100 {
		return errors.New("password is too long")
	}

	return nil
}
