package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"vcspin/internal/gitpin"
	"vcspin/internal/lockfile"
	"vcspin/internal/pkgbuild"
	"vcspin/internal/rewrite"
	"vcspin/internal/shell"
)

var (
	pinManifest  string
	pinDryRun    bool
	pinOutput    string
	pinCommit    bool
	pinWriteLock bool
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Resolve vcspins and rewrite the PKGBUILD",
	Long: `Resolve every entry of the vcspins array against its local repository
and rewrite the PKGBUILD's source array (and any _commit=/_tag= lines)
with the resolved hashes.

By default tags are pinned to the tag object's own hash; with
--pin-commit the tag is replaced by the commit it points to.`,
	Args: cobra.NoArgs,
	RunE: runPin,
}

func init() {
	rootCmd.AddCommand(pinCmd)
	pinCmd.Flags().StringVarP(&pinManifest, "pkgbuild", "p", "PKGBUILD", "path to PKGBUILD")
	pinCmd.Flags().BoolVarP(&pinDryRun, "dry-run", "n", false, "attempt update but do not write to PKGBUILD")
	pinCmd.Flags().StringVarP(&pinOutput, "output", "o", "", "write updated PKGBUILD to this path")
	pinCmd.Flags().BoolVar(&pinCommit, "pin-commit", false, "pin commits instead of tag object hashes")
	pinCmd.Flags().BoolVar(&pinWriteLock, "lock", false, "also write a "+lockfile.DefaultLockfile+" report")
}

func runPin(cmd *cobra.Command, args []string) error {
	eval := shell.New()

	pins, sources, err := resolveManifest(pinManifest, eval)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(pinManifest)
	if err != nil {
		return fmt.Errorf("reading PKGBUILD: %w", err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("PKGBUILD %s is not valid utf-8", pinManifest)
	}

	out, err := rewrite.Manifest(string(data), sources, pins, pinCommit)
	if err != nil {
		return err
	}

	if pinDryRun {
		log.Debug("skipping write back because of dry run")
		return nil
	}

	path := pinManifest
	if pinOutput != "" {
		path = pinOutput
	}
	log.Debug("updating PKGBUILD", "path", path)
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("writing PKGBUILD: %w", err)
	}

	// written after the PKGBUILD so the lock never describes a manifest
	// state that was not persisted
	if pinWriteLock {
		lf := lockfile.New(pins)
		if err := lf.Save(filepath.Dir(pinManifest)); err != nil {
			return err
		}
	}

	fmt.Printf("Pinned %d source(s) in %s\n", pins.Len(), path)
	return nil
}

// resolveManifest evaluates the vcspins and source arrays of a PKGBUILD
// and resolves every pin against the repository checked out next to it.
func resolveManifest(manifest string, eval pkgbuild.Evaluator) (*gitpin.Set, []pkgbuild.Input, error) {
	if _, err := os.Stat(manifest); err != nil {
		return nil, nil, fmt.Errorf("accessing PKGBUILD: %w", err)
	}

	pins, err := pkgbuild.ListPins(eval, manifest)
	if err != nil {
		return nil, nil, fmt.Errorf("getting pins from PKGBUILD: %w", err)
	}
	log.Debug("found vcs pins", "count", len(pins))

	if len(pins) == 0 {
		return nil, nil, fmt.Errorf("no vcs pins are configured (vcspins= is empty)")
	}

	sources, err := pkgbuild.ListSources(eval, manifest)
	if err != nil {
		return nil, nil, fmt.Errorf("getting sources from PKGBUILD: %w", err)
	}

	folder := filepath.Dir(manifest)
	set := gitpin.NewSet()
	for _, pin := range pins {
		filename, err := pin.Filename()
		if err != nil {
			return nil, nil, fmt.Errorf("pin %q: %w", pin, err)
		}

		src, ok := pin.Source.(pkgbuild.GitSource)
		if !ok {
			return nil, nil, fmt.Errorf("pin %q: only git sources are allowed in vcspins", filename)
		}

		resolved, err := gitpin.Resolve(src, filepath.Join(folder, filename))
		if err != nil {
			return nil, nil, fmt.Errorf("resolving pin %q: %w", filename, err)
		}
		if err := set.Add(filename, resolved); err != nil {
			return nil, nil, err
		}
	}

	return set, sources, nil
}
