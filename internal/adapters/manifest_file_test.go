package adapters

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addon-installer/internal/types"
	"addon-installer/tests/testutil"
)

const sampleYAMLManifest = `- url: https://github.com/odoo/odoo
  branch: "14.0"
  base: true
- url: https://{{GIT_TOKEN}}@github.com/OCA/website
  branch: "14.0"
  commit: 3a1f9c2
  excludes: [website_a]
  includes: []
  lang: fr
  patches:
    - url: https://github.com/Numigi/website
      branch: 14.0-fix
    - file: patches/website.patch
`

const sampleJSONManifest = `[
  {
    "url": "https://github.com/OCA/server-tools",
    "branch": "14.0",
    "exclude_modules": ["base_technical_user"],
    "include_modules": ["auditlog", "base_technical_user"]
  }
]`

const sampleTOMLManifest = `[[addons]]
url = "https://github.com/OCA/web"
branch = "14.0"
excludes = ["web_responsive"]

[[addons.patches]]
file = "web.patch"
`

func writeManifest(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	testutil.WriteFile(t, path, content)
	return path
}

func TestManifestLoadYAML(t *testing.T) {
	path := writeManifest(t, "third_party_addons.yaml", sampleYAMLManifest)

	manifest, err := NewManifestFileAdapter().Load(path)
	require.NoError(t, err)

	want := []types.ManifestRecord{
		{URL: "https://github.com/odoo/odoo", Branch: "14.0", Base: true},
		{
			URL:      "https://{{GIT_TOKEN}}@github.com/OCA/website",
			Branch:   "14.0",
			Commit:   "3a1f9c2",
			Excludes: []string{"website_a"},
			Includes: []string{},
			Lang:     "fr",
			Patches: []types.ManifestPatch{
				{URL: "https://github.com/Numigi/website", Branch: "14.0-fix"},
				{File: "patches/website.patch"},
			},
		},
	}
	assert.Equal(t, types.ManifestFormatYAML, manifest.Format)
	if diff := cmp.Diff(want, manifest.Records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestManifestLoadJSON(t *testing.T) {
	path := writeManifest(t, "third_party_addons.json", sampleJSONManifest)

	manifest, err := NewManifestFileAdapter().Load(path)
	require.NoError(t, err)
	require.Len(t, manifest.Records, 1)
	assert.Equal(t, types.ManifestFormatJSON, manifest.Format)
	assert.Equal(t, []string{"base_technical_user"}, manifest.Records[0].ExcludeModules)
	assert.Equal(t, []string{"auditlog", "base_technical_user"}, manifest.Records[0].IncludeModules)
}

func TestManifestLoadTOML(t *testing.T) {
	path := writeManifest(t, "addons.toml", sampleTOMLManifest)

	manifest, err := NewManifestFileAdapter().Load(path)
	require.NoError(t, err)
	want := []types.ManifestRecord{{
		URL:      "https://github.com/OCA/web",
		Branch:   "14.0",
		Excludes: []string{"web_responsive"},
		Patches:  []types.ManifestPatch{{File: "web.patch"}},
	}}
	if diff := cmp.Diff(want, manifest.Records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestManifestLoadEmptyFile(t *testing.T) {
	path := writeManifest(t, "empty.yml", "")

	manifest, err := NewManifestFileAdapter().Load(path)
	require.NoError(t, err)
	assert.Empty(t, manifest.Records)
}

func TestManifestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{name: "unknown extension", file: "addons.ini", content: "", want: "unsupported manifest extension"},
		{name: "unknown yaml key", file: "addons.yaml", content: "- url: u\n  branch: b\n  revision: x\n", want: "failed to parse yaml manifest"},
		{name: "unknown toml key", file: "addons.toml", content: "[[addons]]\nurl = \"u\"\nbranch = \"b\"\nrevision = \"x\"\n", want: "failed to parse toml manifest"},
		{name: "not a list", file: "addons.json", content: `{"url": "u"}`, want: "failed to parse json manifest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.file, tt.content)
			_, err := NewManifestFileAdapter().Load(path)
			require.Error(t, err)
			assert.Equal(t, types.KindConfiguration, types.KindOf(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestManifestLoadMissingFile(t *testing.T) {
	_, err := NewManifestFileAdapter().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, types.KindConfiguration, types.KindOf(err))
}
