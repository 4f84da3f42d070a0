// Package gitpin resolves a tag name in a local repository to the tag's
// own object hash and the commit it points to.
package gitpin

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"vcspin/internal/pkgbuild"
)

// ResolvedPin is the immutable result of resolving one pin. TagHash is
// the hash the tag reference itself resolves to (the tag object for an
// annotated tag, the commit for a lightweight one); CommitHash is the
// fully peeled commit.
type ResolvedPin struct {
	TagHash    string
	CommitHash string
	Source     pkgbuild.GitSource
}

// Resolve looks up refs/tags/<tag> in the repository expected at
// repoPath. The repository must already exist; cloning is not supported.
func Resolve(source pkgbuild.GitSource, repoPath string) (*ResolvedPin, error) {
	if source.Tag == "" {
		return nil, fmt.Errorf("source %s has no tag configured", source)
	}

	if _, err := os.Stat(repoPath); err != nil {
		return nil, fmt.Errorf("repository %s does not exist, cloning is not supported: %w", repoPath, err)
	}

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository %s: %w", repoPath, err)
	}

	ref, err := repo.Reference(plumbing.NewTagReferenceName(source.Tag), true)
	if err != nil {
		return nil, fmt.Errorf("finding tag %q in %s: %w", source.Tag, repoPath, err)
	}

	tagHash := ref.Hash()
	log.Info("resolved tag", "tag", source.Tag, "hash", tagHash)

	commitHash, err := peel(repo, tagHash)
	if err != nil {
		return nil, fmt.Errorf("peeling tag %q: %w", source.Tag, err)
	}
	log.Info("resolved tag to commit", "tag", source.Tag, "commit", commitHash)

	return &ResolvedPin{
		TagHash:    tagHash.String(),
		CommitHash: commitHash.String(),
		Source:     source,
	}, nil
}

// peel follows annotated tag objects until it reaches a commit.
func peel(repo *git.Repository, hash plumbing.Hash) (plumbing.Hash, error) {
	for {
		tag, err := repo.TagObject(hash)
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			break
		}
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("reading tag object %s: %w", hash, err)
		}
		hash = tag.Target
	}

	if _, err := repo.CommitObject(hash); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("object %s is not a commit: %w", hash, err)
	}
	return hash, nil
}
