package handlers

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Validation limits for request fields.
const (
	maxTitleLen       = 300
	maxArticleBodyLen = 100_000
	maxCommentBodyLen = 10_000
	maxDisplayNameLen = 100
	minPasswordLen    = 8
)

// validateArticle checks article inputs and returns the first error found.
func validateArticle(title, body string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if strings.TrimSpace(body) == "" {
		return "Body is required."
	}
	if utf8.RuneCountInString(body) > maxArticleBodyLen {
		return "Body is too long (max 100,000 characters)."
	}
	return ""
}

// validateComment checks comment inputs and returns the first error found.
func validateComment(body string) string {
	if strings.TrimSpace(body) == "" {
		return "Comment body is required."
	}
	if utf8.RuneCountInString(body) > maxCommentBodyLen {
		return "Comment is too long (max 10,000 characters)."
	}
	return ""
}

// validateRegistration checks new-account inputs and returns the first error found.
func validateRegistration(email, displayName, password string) string {
	if _, err := mail.ParseAddress(email); err != nil {
		return "A valid email address is required."
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return "Display name is required."
	}
	if utf8.RuneCountInString(displayName) > maxDisplayNameLen {
		return "Display name is too long (max 100 characters)."
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "Password must be at least 8 characters."
	}
	return ""
}
