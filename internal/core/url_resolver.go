package core

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"addon-installer/internal/types"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([^{}\s]+)\s*\}\}`)

// URLResolver substitutes {{NAME}} placeholders in repository URLs with
// values from an environment mapping.
type URLResolver struct {
	env map[string]string
}

// NewURLResolver uses env as the variable mapping; a nil env falls back to
// the process environment.
func NewURLResolver(env map[string]string) URLResolver {
	if env == nil {
		env = ProcessEnvironment()
	}
	return URLResolver{env: env}
}

func (r URLResolver) Resolve(template string) (string, error) {
	var missing []string
	resolved := placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		name := placeholderPattern.FindStringSubmatch(token)[1]
		value, ok := r.env[name]
		if !ok {
			missing = append(missing, name)
			return token
		}
		return value
	})
	if len(missing) > 0 {
		return "", errbuilder.New().
			WithCode(types.CodeResolution).
			WithMsg(fmt.Sprintf("missing variable %s referenced by %s", strings.Join(missing, ", "), template))
	}
	return resolved, nil
}

// HasPlaceholders reports whether template references any variable.
func HasPlaceholders(template string) bool {
	return placeholderPattern.MatchString(template)
}

// ProcessEnvironment snapshots the process environment as a mapping.
func ProcessEnvironment() map[string]string {
	env := map[string]string{}
	for _, entry := range os.Environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		env[key] = value
	}
	return env
}
