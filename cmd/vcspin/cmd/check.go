package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"vcspin/internal/lockfile"
	"vcspin/internal/pkgbuild"
	"vcspin/internal/shell"
)

var checkManifest string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the PKGBUILD matches the lock report",
	Long: `Verify that the PKGBUILD's source array carries the hashes recorded in
vcspin.lock.yaml.

This command checks for:
- Pins recorded in the lock report but missing from the source array
- Source entries whose hash differs from the recorded one
- Pinned entries that are not git sources anymore`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkManifest, "pkgbuild", "p", "PKGBUILD", "path to PKGBUILD")
}

func runCheck(cmd *cobra.Command, args []string) error {
	lockPath := filepath.Join(filepath.Dir(checkManifest), lockfile.DefaultLockfile)
	lf, err := lockfile.Load(lockPath)
	if err != nil {
		return fmt.Errorf("loading lock report (run 'vcspin pin --lock' to create one): %w", err)
	}

	eval := shell.New()
	sources, err := pkgbuild.ListSources(eval, checkManifest)
	if err != nil {
		return fmt.Errorf("getting sources from PKGBUILD: %w", err)
	}

	byName := make(map[string]pkgbuild.Input)
	for _, src := range sources {
		name, err := src.Filename()
		if err != nil {
			return fmt.Errorf("source entry %q: %w", src, err)
		}
		byName[name] = src
	}

	var problems []string
	for name, pin := range lf.Pins {
		src, ok := byName[name]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: recorded in lock report but missing from source array", name))
			continue
		}

		git, ok := src.Source.(pkgbuild.GitSource)
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: not a git source anymore", name))
			continue
		}

		if git.Tag != pin.TagHash && git.Commit != pin.CommitHash {
			problems = append(problems, fmt.Sprintf("%s: pinned to %s, lock report has tag %s / commit %s", name, git, pin.TagHash, pin.CommitHash))
		}
	}
	sort.Strings(problems)

	if len(problems) > 0 {
		fmt.Println("PKGBUILD is out of sync with the lock report:")
		for _, p := range problems {
			fmt.Printf("  ! %s\n", p)
		}
		return fmt.Errorf("lock report verification failed")
	}

	fmt.Println("PKGBUILD matches the lock report")
	return nil
}
