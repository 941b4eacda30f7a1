package types

// ManifestPatch is a patch entry as written in a manifest: either a remote
// branch (url, branch, commit) or a local patch file (file).
type ManifestPatch struct {
	URL    string `yaml:"url,omitempty" toml:"url,omitempty"`
	Branch string `yaml:"branch,omitempty" toml:"branch,omitempty"`
	Commit string `yaml:"commit,omitempty" toml:"commit,omitempty"`
	File   string `yaml:"file,omitempty" toml:"file,omitempty"`
}

// ManifestRecord is one add-on entry of a manifest. YAML and JSON
// manifests are a top-level list of records; TOML manifests hold them in
// an [[addons]] array of tables.
type ManifestRecord struct {
	URL     string          `yaml:"url" toml:"url"`
	Branch  string          `yaml:"branch" toml:"branch"`
	Commit  string          `yaml:"commit,omitempty" toml:"commit,omitempty"`
	Patches []ManifestPatch `yaml:"patches,omitempty" toml:"patches,omitempty"`

	Excludes []string `yaml:"excludes,omitempty" toml:"excludes,omitempty"`
	// Includes stays nil when the key is absent; an explicit empty list
	// selects nothing.
	Includes []string `yaml:"includes,omitempty" toml:"includes,omitempty"`

	// Legacy spellings accepted from older JSON manifests.
	ExcludeModules []string `yaml:"exclude_modules,omitempty" toml:"exclude_modules,omitempty"`
	IncludeModules []string `yaml:"include_modules,omitempty" toml:"include_modules,omitempty"`

	Base         bool   `yaml:"base,omitempty" toml:"base,omitempty"`
	PlatformRoot string `yaml:"platform_root,omitempty" toml:"platform_root,omitempty"`
	Lang         string `yaml:"lang,omitempty" toml:"lang,omitempty"`
}

// TOMLManifest is the document root of a TOML manifest.
type TOMLManifest struct {
	Addons []ManifestRecord `toml:"addons"`
}

// Manifest is a loaded manifest file.
type Manifest struct {
	Path    string
	Format  ManifestFormat
	Records []ManifestRecord
}
