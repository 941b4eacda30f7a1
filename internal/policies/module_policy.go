package policies

// ModulePolicy decides which discovered modules are installed.
//
// Excludes always win. When Includes is non-nil only listed names survive,
// so an empty non-nil include list selects nothing.
type ModulePolicy struct {
	excludes map[string]struct{}
	includes map[string]struct{}
}

func NewModulePolicy(excludes []string, includes []string) ModulePolicy {
	policy := ModulePolicy{excludes: toSet(excludes)}
	if includes != nil {
		policy.includes = toSet(includes)
	}
	return policy
}

func (p ModulePolicy) Allows(name string) bool {
	if _, excluded := p.excludes[name]; excluded {
		return false
	}
	if p.includes == nil {
		return true
	}
	_, included := p.includes[name]
	return included
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
