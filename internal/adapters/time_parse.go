package adapters

import (
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"addon-installer/internal/types"
)

// lockTimeLayouts are tried in order; install writes the first one.
var lockTimeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02 15:04:05",
}

// parseLockTime reads a generated_at value, including the layouts found in
// hand-edited locks, and returns it in UTC.
func parseLockTime(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range lockTimeLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, errbuilder.New().
		WithCode(types.CodeConfiguration).
		WithMsg("unrecognized timestamp " + value)
}
