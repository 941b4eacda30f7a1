package types

// PatchSpec is a change set applied on top of a fresh checkout. Exactly one
// of the variant-specific field groups is meaningful, selected by Kind.
type PatchSpec struct {
	Kind PatchKind

	// Remote patch: URL template, branch and optional exact commit.
	URL    string
	Branch string
	Commit string

	// File patch: absolute path to a unified diff.
	File string
}

// Source identifies the patch in logs and error messages without exposing
// resolved secrets.
func (p PatchSpec) Source() string {
	if p.Kind == PatchKindFile {
		return p.File
	}
	return p.URL + "@" + p.Branch
}

// InstallRequest describes one add-on repository to install. It is built
// once from a manifest record and never mutated afterwards.
type InstallRequest struct {
	// URL is the repository URL template; placeholders are resolved at
	// install time so secrets never live in the request.
	URL     string
	Branch  string
	Commit  string
	Patches []PatchSpec

	Excludes []string
	// Includes is nil when every non-excluded module is wanted.
	Includes []string

	Placement    PlacementKind
	PlatformRoot string

	// Languages is empty when every translation is kept.
	Languages []string
}

// Ref is the commit when pinned, else the branch.
func (r InstallRequest) Ref() string {
	if r.Commit != "" {
		return r.Commit
	}
	return r.Branch
}

// ModuleUnit is a directory recognised as an installable module.
type ModuleUnit struct {
	Name string
	Path string
}

// Checkout is an exclusively-owned temporary git working copy.
type Checkout struct {
	Dir string
	// Head is the commit checked out before any patch was applied.
	Head string
}
