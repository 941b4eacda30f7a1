package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"addon-installer/internal/shared"
	"addon-installer/internal/types"
)

// RequestBuilder converts manifest records into install requests.
type RequestBuilder struct {
	// WorkDir anchors relative patch file paths, normally the manifest's directory.
	WorkDir string
	// Languages is the batch-wide language filter; a record's lang overrides it.
	Languages []string
}

func NewRequestBuilder(workDir string, languages []string) RequestBuilder {
	return RequestBuilder{WorkDir: workDir, Languages: languages}
}

func (b RequestBuilder) BuildAll(records []types.ManifestRecord) ([]types.InstallRequest, error) {
	requests := make([]types.InstallRequest, 0, len(records))
	for idx, record := range records {
		request, err := b.Build(record)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(types.CodeConfiguration).
				WithMsg(fmt.Sprintf("manifest entry %d", idx+1)).
				WithCause(err)
		}
		requests = append(requests, request)
	}
	return requests, nil
}

func (b RequestBuilder) Build(record types.ManifestRecord) (types.InstallRequest, error) {
	url := strings.TrimSpace(record.URL)
	if url == "" {
		return types.InstallRequest{}, configurationError("repository url is required")
	}
	branch := strings.TrimSpace(record.Branch)
	if branch == "" {
		return types.InstallRequest{}, configurationError(fmt.Sprintf("branch is required for %s", url))
	}
	commit := strings.TrimSpace(record.Commit)
	if err := checkRefs(url, branch, commit); err != nil {
		return types.InstallRequest{}, err
	}
	patches := make([]types.PatchSpec, 0, len(record.Patches))
	for idx, entry := range record.Patches {
		patch, err := b.buildPatch(entry)
		if err != nil {
			return types.InstallRequest{}, configurationError(fmt.Sprintf("patch %d of %s: %s", idx+1, url, errorMessage(err)))
		}
		patches = append(patches, patch)
	}

	request := types.InstallRequest{
		URL:       url,
		Branch:    branch,
		Commit:    commit,
		Patches:   patches,
		Excludes:  shared.CleanNames(append(append([]string{}, record.Excludes...), record.ExcludeModules...)),
		Includes:  mergeIncludes(record.Includes, record.IncludeModules),
		Placement: types.PlacementGeneric,
		Languages: b.Languages,
	}
	if lang := strings.TrimSpace(record.Lang); lang != "" {
		request.Languages = shared.SplitList(lang)
	}
	if record.Base {
		request.Placement = types.PlacementBase
		root := strings.TrimSpace(record.PlatformRoot)
		if root == "" {
			root = types.DefaultPlatformRoot
		}
		if strings.ContainsAny(root, `/\`) || root == "." || root == ".." {
			return types.InstallRequest{}, configurationError(fmt.Sprintf("platform_root %q must be a plain directory name", root))
		}
		request.PlatformRoot = root
	} else if strings.TrimSpace(record.PlatformRoot) != "" {
		return types.InstallRequest{}, configurationError(fmt.Sprintf("platform_root is only valid for base repositories (%s)", url))
	}
	return request, nil
}

func (b RequestBuilder) buildPatch(entry types.ManifestPatch) (types.PatchSpec, error) {
	file := strings.TrimSpace(entry.File)
	url := strings.TrimSpace(entry.URL)
	switch {
	case file != "" && url != "":
		return types.PatchSpec{}, configurationError("unrecognized patch variant: both file and url are set")
	case file != "":
		if !filepath.IsAbs(file) {
			file = filepath.Join(b.WorkDir, file)
		}
		return types.PatchSpec{Kind: types.PatchKindFile, File: filepath.Clean(file)}, nil
	case url != "":
		branch := strings.TrimSpace(entry.Branch)
		if branch == "" {
			return types.PatchSpec{}, configurationError(fmt.Sprintf("remote patch %s requires a branch", url))
		}
		commit := strings.TrimSpace(entry.Commit)
		if err := checkRefs(url, branch, commit); err != nil {
			return types.PatchSpec{}, err
		}
		return types.PatchSpec{
			Kind:   types.PatchKindRemote,
			URL:    url,
			Branch: branch,
			Commit: commit,
		}, nil
	default:
		return types.PatchSpec{}, configurationError("unrecognized patch variant: neither file nor url is set")
	}
}

// checkRefs rejects values git would parse as options.
func checkRefs(url string, refs ...string) error {
	for _, value := range append([]string{url}, refs...) {
		if strings.HasPrefix(value, "-") {
			return configurationError(fmt.Sprintf("%q must not start with '-'", value))
		}
	}
	return nil
}

func mergeIncludes(includes []string, legacy []string) []string {
	if includes == nil && legacy == nil {
		return nil
	}
	return shared.CleanNames(append(append([]string{}, includes...), legacy...))
}

func configurationError(msg string) error {
	return errbuilder.New().
		WithCode(types.CodeConfiguration).
		WithMsg(msg)
}
