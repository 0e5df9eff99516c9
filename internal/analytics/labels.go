package analytics

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MissingLabel is the display fallback for absent text fields.
	MissingLabel = "--"
	// UnknownCustomer buckets heatmap rows whose customer name is absent.
	// Indistinguishable from a real customer named "Unknown"; the ambiguity
	// comes from upstream and is preserved here.
	UnknownCustomer = "Unknown"
)

// TitleLabel normalizes a lifecycle-state label for display: the input is
// lowercased, split on runs of whitespace or underscores, and each word is
// title-cased before rejoining with single spaces. Nil or empty input maps
// to MissingLabel. The normalization is idempotent.
func TitleLabel(raw *string) string {
	if raw == nil {
		return MissingLabel
	}
	return titleLabel(*raw)
}

func titleLabel(raw string) string {
	words := strings.Fields(strings.ReplaceAll(raw, "_", " "))
	if len(words) == 0 {
		return MissingLabel
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// TitleLabels normalizes every label in the given list, preserving order.
func TitleLabels(raw []string) []string {
	labels := make([]string, len(raw))
	for i, s := range raw {
		labels[i] = titleLabel(s)
	}
	return labels
}
