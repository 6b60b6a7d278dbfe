package validator

import (
	"sort"
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

// Message flattens the field errors into one deterministic string.
func (v ValidationErrors) Message() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(v))
	for _, field := range fields {
		messages = append(messages, v[field])
	}
	return strings.Join(messages, ", ")
}

func ValidatePost(title, url string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(title) == "" {
		errs.Add("title", "title is required")
	}
	if strings.TrimSpace(url) == "" {
		errs.Add("url", "url is required")
	}

	return errs
}

func ValidateNewUser(username string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(username) == "" {
		errs.Add("username", "username is required")
	}

	return errs
}
