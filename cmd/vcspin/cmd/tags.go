package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"vcspin/internal/pkgbuild"
	"vcspin/internal/shell"
)

var tagsManifest string

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags available in each pin's repository",
	Long: `List the tags present in the local repository of every vcspins entry,
newest first. Tags that look like semantic versions are ordered by
version, everything else falls back to lexical order.`,
	Args: cobra.NoArgs,
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.Flags().StringVarP(&tagsManifest, "pkgbuild", "p", "PKGBUILD", "path to PKGBUILD")
}

func runTags(cmd *cobra.Command, args []string) error {
	eval := shell.New()

	pins, err := pkgbuild.ListPins(eval, tagsManifest)
	if err != nil {
		return fmt.Errorf("getting pins from PKGBUILD: %w", err)
	}
	if len(pins) == 0 {
		return fmt.Errorf("no vcs pins are configured (vcspins= is empty)")
	}

	folder := filepath.Dir(tagsManifest)
	for _, pin := range pins {
		filename, err := pin.Filename()
		if err != nil {
			return fmt.Errorf("pin %q: %w", pin, err)
		}

		src, ok := pin.Source.(pkgbuild.GitSource)
		if !ok {
			return fmt.Errorf("pin %q: only git sources are allowed in vcspins", filename)
		}

		tags, err := listTags(filepath.Join(folder, filename))
		if err != nil {
			return fmt.Errorf("listing tags for %q: %w", filename, err)
		}

		fmt.Printf("%s:\n", filename)
		for _, tag := range tags {
			marker := " "
			if tag == src.Tag {
				marker = "*"
			}
			fmt.Printf("  %s %s\n", marker, tag)
		}
	}

	return nil
}

// listTags returns the repository's tag names, newest first.
func listTags(repoPath string) ([]string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortTags(tags)
	return tags, nil
}

// sortTags orders semver-looking tags by version, descending, with
// everything else after them in reverse lexical order.
func sortTags(tags []string) {
	sort.Slice(tags, func(i, j int) bool {
		a, b := tags[i], tags[j]
		av, bv := semver.IsValid(a), semver.IsValid(b)
		switch {
		case av && bv:
			return semver.Compare(a, b) > 0
		case av != bv:
			return av
		default:
			return strings.Compare(a, b) > 0
		}
	})
}
