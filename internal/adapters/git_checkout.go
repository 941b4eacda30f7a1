package adapters

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog/log"

	"addon-installer/internal/ports"
	"addon-installer/internal/shared"
	"addon-installer/internal/types"
)

// GitCheckoutAdapter clones repositories into private temporary
// directories with go-git.
type GitCheckoutAdapter struct {
	// TmpDir is the parent of every checkout; empty uses the system default.
	TmpDir string
}

func NewGitCheckoutAdapter(tmpDir string) GitCheckoutAdapter {
	return GitCheckoutAdapter{TmpDir: tmpDir}
}

var _ ports.RepositoryPort = GitCheckoutAdapter{}

// Acquire clones branch of url and, when commit is set, checks that commit
// out. The full branch history is fetched so later merges have a base.
func (a GitCheckoutAdapter) Acquire(ctx context.Context, url string, branch string, commit string) (types.Checkout, error) {
	display := shared.StripUserinfo(url)
	redactor := strings.NewReplacer(url, display)

	dir, err := os.MkdirTemp(a.TmpDir, "addon-installer-*")
	if err != nil {
		return types.Checkout{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create checkout directory").
			WithCause(err)
	}
	log.Ctx(ctx).Debug().Str("url", display).Str("branch", branch).Str("dir", dir).Msg("cloning repository")

	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           url,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return types.Checkout{}, acquisitionError(fmt.Sprintf("failed to clone branch %s of %s: %s", branch, display, redactor.Replace(err.Error())))
	}

	if commit != "" {
		hash, err := repo.ResolveRevision(plumbing.Revision(commit))
		if err != nil {
			_ = os.RemoveAll(dir)
			return types.Checkout{}, acquisitionError(fmt.Sprintf("commit %s not found on branch %s of %s", commit, branch, display))
		}
		worktree, err := repo.Worktree()
		if err != nil {
			_ = os.RemoveAll(dir)
			return types.Checkout{}, acquisitionError("failed to open worktree: " + err.Error())
		}
		if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
			_ = os.RemoveAll(dir)
			return types.Checkout{}, acquisitionError(fmt.Sprintf("failed to check out %s: %s", commit, err.Error()))
		}
	}

	head, err := repo.Head()
	if err != nil {
		_ = os.RemoveAll(dir)
		return types.Checkout{}, acquisitionError("failed to read checked out commit: " + err.Error())
	}
	return types.Checkout{Dir: dir, Head: head.Hash().String()}, nil
}

// Release deletes the checkout directory.
func (a GitCheckoutAdapter) Release(checkout types.Checkout) error {
	if strings.TrimSpace(checkout.Dir) == "" {
		return nil
	}
	if err := os.RemoveAll(checkout.Dir); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to remove checkout " + checkout.Dir).
			WithCause(err)
	}
	return nil
}

// Errors carry no cause so the resolved URL cannot leak through it.
func acquisitionError(msg string) error {
	return errbuilder.New().
		WithCode(types.CodeAcquisition).
		WithMsg(msg)
}
