package domain

import (
	"fmt"
	"hybrid-guard/errors"
	"strings"
)

// Kind tells which feature family is native to a sample.
type Kind string

const (
	Text    Kind = "email"
	UrlLike Kind = "url"
)

// Sample is the raw input of a single scoring request or training row.
type Sample struct {
	Content string
	Kind    Kind
}

// ParseKind maps the inbound input_type onto a Kind. An empty value means "email".
func ParseKind(inputType string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(inputType)) {
	case "", string(Text):
		return Text, nil
	case string(UrlLike):
		return UrlLike, nil
	default:
		return "", fmt.Errorf("%w: %q", errors.ErrUnknownInputType, inputType)
	}
}
