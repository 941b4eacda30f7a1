package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/subosito/gotenv"

	"addon-installer/internal/ports"
	"addon-installer/internal/types"
)

// EnvironmentAdapter builds the variable mapping for URL templates from an
// optional dotenv file overlaid by the process environment.
type EnvironmentAdapter struct {
	// Environ lists the process environment; os.Environ when nil.
	Environ func() []string
}

func NewEnvironmentAdapter() EnvironmentAdapter {
	return EnvironmentAdapter{Environ: os.Environ}
}

var _ ports.EnvironmentPort = EnvironmentAdapter{}

// Load returns the dotenv values of envFile (if any) with process
// variables taking precedence.
func (a EnvironmentAdapter) Load(envFile string) (map[string]string, error) {
	env := map[string]string{}
	if strings.TrimSpace(envFile) != "" {
		values, err := gotenv.Read(envFile)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(types.CodeConfiguration).
				WithMsg("failed to read env file " + envFile).
				WithCause(err)
		}
		for key, value := range values {
			env[key] = value
		}
	}
	environ := a.Environ
	if environ == nil {
		environ = os.Environ
	}
	for _, entry := range environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		env[key] = value
	}
	return env, nil
}
