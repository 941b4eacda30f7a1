package types

// LockEntry records what one successful install placed. Repository holds
// the URL template, never the resolved URL.
type LockEntry struct {
	Repository     string   `yaml:"repository"`
	Branch         string   `yaml:"branch"`
	Commit         string   `yaml:"commit,omitempty"`
	ResolvedCommit string   `yaml:"resolved_commit"`
	Patches        int      `yaml:"patches"`
	Base           bool     `yaml:"base,omitempty"`
	Modules        []string `yaml:"modules"`
}

type InstallLock struct {
	GeneratedAt string      `yaml:"generated_at"`
	Destination string      `yaml:"destination"`
	Entries     []LockEntry `yaml:"entries"`
}
