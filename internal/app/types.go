package app

import "addon-installer/internal/types"

type InstallRequest struct {
	ManifestPath string
	Destination  string
	Languages    []string
	EnvFile      string
	LockFile     string
	Jobs         int
}

type InstallOneRequest struct {
	URL          string
	Branch       string
	Commit       string
	Base         bool
	PlatformRoot string
	Excludes     []string
	// Includes is nil when every non-excluded module is wanted.
	Includes     []string
	PatchFiles   []string
	Destination  string
	Languages    []string
	EnvFile      string
	LockFile     string
}

type InstallResult struct {
	RunID       string
	Destination string
	// Entries holds the requests placed before any failure, in manifest order.
	Entries     []types.LockEntry
	LockFile    string
}

type ValidateRequest struct {
	ManifestPath string
	EnvFile      string
	Languages    []string
}

type ValidateResult struct {
	Format       types.ManifestFormat
	Entries      int
	BaseEntries  int
	Patches      int
	Placeholders int
}

type InspectRequest struct {
	LockFile string
}

type InspectEntry struct {
	Repository     string
	Ref            string
	ResolvedCommit string
	Patches        int
	Base           bool
	Modules        []string
}

type InspectResult struct {
	GeneratedAt string
	Destination string
	ModuleCount int
	Entries     []InspectEntry
}
