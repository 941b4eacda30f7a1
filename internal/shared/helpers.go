// Package shared provides common utility functions used across multiple
// packages in the addon-installer codebase.
package shared

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	return fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err)
}

// SplitList splits a comma separated value, trimming blanks and dropping
// empty items. An empty input yields nil.
func SplitList(value string) []string {
	var items []string
	for _, part := range strings.Split(value, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// CleanNames trims every name, drops empties and duplicates, and keeps the
// nil-ness of the input so "absent" and "empty" stay distinguishable.
func CleanNames(names []string) []string {
	if names == nil {
		return nil
	}
	seen := map[string]struct{}{}
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		value := strings.TrimSpace(name)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		cleaned = append(cleaned, value)
	}
	return cleaned
}

// SortedCopy returns a sorted copy of values.
func SortedCopy(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}

// StripUserinfo removes credentials embedded in a URL so it can be shown in
// logs. Values that do not parse as URLs are returned unchanged.
func StripUserinfo(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.User == nil {
		return raw
	}
	parsed.User = nil
	return parsed.String()
}
