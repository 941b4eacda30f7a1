package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"addon-installer/internal/ports"
	"addon-installer/internal/types"
)

const endOfOptions = "--end-of-options"

// PatchApplier mutates a checked-out working copy.
type PatchApplier interface {
	Apply(ctx context.Context, workingCopy string) error
	Source() string
}

// NewPatchApplier binds a patch spec to its variant implementation.
func NewPatchApplier(spec types.PatchSpec, resolver URLResolver, runner ports.CommandPort) (PatchApplier, error) {
	switch spec.Kind {
	case types.PatchKindRemote:
		return RemotePatch{spec: spec, resolver: resolver, runner: runner}, nil
	case types.PatchKindFile:
		return FilePatch{spec: spec, runner: runner}, nil
	default:
		return nil, configurationError(fmt.Sprintf("unrecognized patch variant %q", spec.Kind))
	}
}

// RemotePatch merges a branch (or one of its commits) from another
// repository through a temporary remote.
type RemotePatch struct {
	spec     types.PatchSpec
	resolver URLResolver
	runner   ports.CommandPort
}

func (p RemotePatch) Source() string {
	return p.spec.Source()
}

func (p RemotePatch) Apply(ctx context.Context, workingCopy string) error {
	url, err := p.resolver.Resolve(p.spec.URL)
	if err != nil {
		return err
	}
	log.Ctx(ctx).Info().
		Str("patch", p.spec.URL).
		Str("branch", p.spec.Branch).
		Str("commit", p.spec.Commit).
		Msg("applying remote patch")

	target := p.spec.Commit
	if target == "" {
		target = types.PatchRemoteName + "/" + p.spec.Branch
	}
	// Manifest values are positional: nothing after --end-of-options is
	// read as a git option.
	steps := [][]string{
		{"remote", "add", endOfOptions, types.PatchRemoteName, url},
		{"fetch", endOfOptions, types.PatchRemoteName, p.spec.Branch},
		{"merge", "-m", types.PatchMergeMessage, endOfOptions, target},
		{"remote", "remove", types.PatchRemoteName},
	}
	// Resolved URLs can carry secrets; logs and errors show the template.
	redactor := strings.NewReplacer(url, p.spec.URL)
	for _, args := range steps {
		if err := runPatchCommand(ctx, p.runner, workingCopy, p.Source(), redactor, args...); err != nil {
			return err
		}
	}
	return nil
}

// FilePatch applies a local unified diff with git apply.
type FilePatch struct {
	spec   types.PatchSpec
	runner ports.CommandPort
}

func (p FilePatch) Source() string {
	return p.spec.Source()
}

func (p FilePatch) Apply(ctx context.Context, workingCopy string) error {
	log.Ctx(ctx).Info().Str("file", p.spec.File).Msg("applying patch file")
	return runPatchCommand(ctx, p.runner, workingCopy, p.Source(), strings.NewReplacer(), "apply", endOfOptions, p.spec.File)
}

func runPatchCommand(ctx context.Context, runner ports.CommandPort, dir string, source string, redactor *strings.Replacer, args ...string) error {
	display := redactor.Replace("git " + strings.Join(args, " "))
	output, err := runner.Run(ctx, dir, "git", args...)
	captured := redactor.Replace(strings.TrimSpace(string(output)))
	log.Ctx(ctx).Debug().Str("command", display).Str("output", captured).Msg("patch command finished")
	if err != nil {
		return errbuilder.New().
			WithCode(types.CodePatch).
			WithMsg(fmt.Sprintf("could not apply patch from %s: %s: %s", source, display, captured))
	}
	return nil
}
