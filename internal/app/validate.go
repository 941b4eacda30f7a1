package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"addon-installer/internal/core"
	"addon-installer/internal/types"
)

// Validate loads and checks a manifest without touching the network or the
// destination: every record must build into a request and every URL
// template must resolve against the environment.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return ValidateResult{}, configurationError("manifest path is required")
	}
	manifest, err := s.Manifests.Load(manifestPath)
	if err != nil {
		return ValidateResult{}, err
	}
	workDir, err := filepath.Abs(filepath.Dir(manifestPath))
	if err != nil {
		return ValidateResult{}, configurationError("failed to resolve manifest directory: " + err.Error())
	}
	requests, err := core.NewRequestBuilder(workDir, req.Languages).BuildAll(manifest.Records)
	if err != nil {
		return ValidateResult{}, err
	}
	env, err := s.Environment.Load(req.EnvFile)
	if err != nil {
		return ValidateResult{}, err
	}
	resolver := core.NewURLResolver(env)

	result := ValidateResult{Format: manifest.Format, Entries: len(requests)}
	for _, request := range requests {
		templates := []string{request.URL}
		for _, patch := range request.Patches {
			result.Patches++
			switch patch.Kind {
			case types.PatchKindRemote:
				templates = append(templates, patch.URL)
			case types.PatchKindFile:
				if _, err := os.Stat(patch.File); err != nil {
					return result, configurationError("patch file not found: " + patch.File)
				}
			}
		}
		for _, template := range templates {
			if core.HasPlaceholders(template) {
				result.Placeholders++
			}
			if _, err := resolver.Resolve(template); err != nil {
				return result, err
			}
		}
		if request.Placement == types.PlacementBase {
			result.BaseEntries++
		}
	}
	log.Ctx(ctx).Debug().Str("manifest", manifestPath).Int("entries", result.Entries).Msg("manifest is valid")
	return result, nil
}
