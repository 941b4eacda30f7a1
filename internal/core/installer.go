package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"addon-installer/internal/policies"
	"addon-installer/internal/ports"
	"addon-installer/internal/shared"
	"addon-installer/internal/types"
)

// Installer runs the per-request pipeline:
// checkout -> patch -> filter (and prune translations) -> place.
type Installer struct {
	Repository ports.RepositoryPort
	Runner     ports.CommandPort
	Resolver   URLResolver
}

func NewInstaller(repository ports.RepositoryPort, runner ports.CommandPort, resolver URLResolver) Installer {
	return Installer{Repository: repository, Runner: runner, Resolver: resolver}
}

// Install runs the whole pipeline for one request. The checkout is released
// on every exit path.
func (i Installer) Install(ctx context.Context, request types.InstallRequest, destination string) (types.LockEntry, error) {
	prepared, err := i.Prepare(ctx, request)
	if err != nil {
		return types.LockEntry{}, err
	}
	defer prepared.Release()
	return prepared.Place(destination)
}

// PreparedInstall is a patched and filtered checkout waiting for placement.
// Callers must Release it.
type PreparedInstall struct {
	ctx       context.Context
	installer Installer
	request   types.InstallRequest
	checkout  types.Checkout
	modules   []types.ModuleUnit
	state     types.InstallState
	released  bool
}

// Prepare acquires the checkout, applies patches in order, selects modules
// and prunes translations. On failure the checkout is already released.
func (i Installer) Prepare(ctx context.Context, request types.InstallRequest) (*PreparedInstall, error) {
	logger := log.Ctx(ctx).With().
		Str("repository", request.URL).
		Str("ref", request.Ref()).
		Logger()
	ctx = logger.WithContext(ctx)

	url, appliers, err := i.resolve(request)
	if err != nil {
		return nil, stepError(err, request, "resolve")
	}

	logger.Info().Msg("installing")
	checkout, err := i.Repository.Acquire(ctx, url, request.Branch, request.Commit)
	if err != nil {
		return nil, stepError(err, request, "checkout")
	}
	assert.NotEmpty(ctx, checkout.Dir, "checkout directory must be set")

	prepared := &PreparedInstall{
		ctx:       ctx,
		installer: i,
		request:   request,
		checkout:  checkout,
		state:     types.StateCheckedOut,
	}
	if err := prepared.prepare(appliers); err != nil {
		prepared.state = types.StateFailed
		prepared.Release()
		return nil, err
	}
	return prepared, nil
}

// resolve checks everything that can fail before any external command runs:
// URL placeholders of the repository and of remote patches, and patch variants.
func (i Installer) resolve(request types.InstallRequest) (string, []PatchApplier, error) {
	url, err := i.Resolver.Resolve(request.URL)
	if err != nil {
		return "", nil, err
	}
	appliers := make([]PatchApplier, 0, len(request.Patches))
	for _, spec := range request.Patches {
		if spec.Kind == types.PatchKindRemote {
			if _, err := i.Resolver.Resolve(spec.URL); err != nil {
				return "", nil, err
			}
		}
		applier, err := NewPatchApplier(spec, i.Resolver, i.Runner)
		if err != nil {
			return "", nil, err
		}
		appliers = append(appliers, applier)
	}
	return url, appliers, nil
}

func (p *PreparedInstall) prepare(appliers []PatchApplier) error {
	logger := zerolog.Ctx(p.ctx)
	for _, applier := range appliers {
		if err := applier.Apply(p.ctx, p.checkout.Dir); err != nil {
			return stepError(err, p.request, "patch")
		}
	}
	p.transition(types.StatePatched)

	policy := policies.NewModulePolicy(p.request.Excludes, p.request.Includes)
	modules, err := CollectModules(SelectModules(ModuleRoots(p.checkout.Dir, p.request), policy))
	if err != nil {
		return stepError(err, p.request, "filter")
	}
	removed, err := PruneTranslations(modules, p.request.Languages)
	if err != nil {
		return stepError(err, p.request, "filter")
	}
	p.modules = modules
	logger.Debug().Int("modules", len(modules)).Int("translations_removed", len(removed)).Msg("modules selected")
	p.transition(types.StateFiltered)
	return nil
}

// Modules returns the selected modules.
func (p *PreparedInstall) Modules() []types.ModuleUnit {
	return p.modules
}

// Place relocates the selected modules into destination.
func (p *PreparedInstall) Place(destination string) (types.LockEntry, error) {
	if err := PlaceModules(p.ctx, p.request, p.checkout.Dir, p.modules, destination); err != nil {
		p.state = types.StateFailed
		return types.LockEntry{}, stepError(err, p.request, "place")
	}
	p.transition(types.StatePlaced)

	names := make([]string, 0, len(p.modules))
	for _, module := range p.modules {
		names = append(names, module.Name)
	}
	entry := types.LockEntry{
		Repository:     p.request.URL,
		Branch:         p.request.Branch,
		Commit:         p.request.Commit,
		ResolvedCommit: p.checkout.Head,
		Patches:        len(p.request.Patches),
		Base:           p.request.Placement == types.PlacementBase,
		Modules:        shared.SortedCopy(names),
	}
	zerolog.Ctx(p.ctx).Info().Str("destination", destination).Int("modules", len(names)).Msg("installed")
	return entry, nil
}

// Release deletes the checkout. It is safe to call more than once.
func (p *PreparedInstall) Release() {
	if p.released {
		return
	}
	p.released = true
	if err := p.installer.Repository.Release(p.checkout); err != nil {
		zerolog.Ctx(p.ctx).Warn().Err(err).Str("dir", p.checkout.Dir).Msg("failed to remove checkout")
	}
	if p.state == types.StatePlaced {
		p.transition(types.StateDone)
	}
}

// State reports where the request is in the pipeline.
func (p *PreparedInstall) State() types.InstallState {
	return p.state
}

func (p *PreparedInstall) transition(state types.InstallState) {
	p.state = state
	zerolog.Ctx(p.ctx).Debug().Str("state", string(state)).Msg("install state changed")
}
