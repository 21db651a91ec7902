package domain

import (
	"strings"
	"time"
)

// DateLayout is the wire format for check-in and check-out dates.
const DateLayout = "2006-01-02"

// StayTerm is the resolved stay classification for a new resident.
type StayTerm struct {
	Variant Variant
	Label   string
}

// ClassifyDuration maps a free-text duration label to a resident variant.
// Any label mentioning days or "short" is a tourist stay; everything else,
// including week counts and custom text, is a student stay.
func ClassifyDuration(label string) Variant {
	l := strings.ToLower(strings.TrimSpace(label))
	if strings.Contains(l, "day") || strings.Contains(l, "short") {
		return VariantTourist
	}
	return VariantStudent
}

// ResolveStayTerm picks the variant for a conversion. An explicit stay type
// wins; the duration label is only parsed when none was given.
func ResolveStayTerm(explicit *Variant, label string) (StayTerm, error) {
	if explicit != nil && *explicit != "" {
		if !explicit.Valid() {
			return StayTerm{}, ErrInvalidVariant
		}
		return StayTerm{Variant: *explicit, Label: label}, nil
	}
	return StayTerm{Variant: ClassifyDuration(label), Label: label}, nil
}

// ParseDate parses an optional YYYY-MM-DD value. Empty input yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}
