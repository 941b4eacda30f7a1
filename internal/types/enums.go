package types

type PatchKind string

const (
	PatchKindRemote PatchKind = "remote"
	PatchKindFile   PatchKind = "file"
)

// PlacementKind selects how selected modules are relocated into the
// destination tree.
type PlacementKind string

const (
	PlacementGeneric PlacementKind = "generic"
	PlacementBase    PlacementKind = "base"
)

type ManifestFormat string

const (
	ManifestFormatYAML ManifestFormat = "yaml"
	ManifestFormatJSON ManifestFormat = "json"
	ManifestFormatTOML ManifestFormat = "toml"
)

// InstallState is a step of the per-request installation state machine.
type InstallState string

const (
	StatePending    InstallState = "pending"
	StateCheckedOut InstallState = "checked-out"
	StatePatched    InstallState = "patched"
	StateFiltered   InstallState = "filtered"
	StatePlaced     InstallState = "placed"
	StateDone       InstallState = "done"
	StateFailed     InstallState = "failed"
)

const (
	// PatchRemoteName is the temporary remote used while merging a remote patch.
	PatchRemoteName = "patch"
	// PatchMergeMessage is the commit message of every patch merge.
	PatchMergeMessage = "patch"
	// TranslationDir is the per-module directory holding translation files.
	TranslationDir = "i18n"
	// TranslationExt is the extension of translation files subject to pruning.
	TranslationExt = ".po"
	// AddonsDir is the top-level module directory of a base platform checkout.
	AddonsDir = "addons"
	// DefaultPlatformRoot is the deployed package directory of the base platform.
	DefaultPlatformRoot = "odoo"
)

// ModuleMarkers are the file names whose presence makes a directory a module.
var ModuleMarkers = []string{"__manifest__.py", "__openerp__.py"}
