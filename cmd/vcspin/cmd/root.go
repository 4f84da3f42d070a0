package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var verbosity int

var rootCmd = &cobra.Command{
	Use:     "vcspin",
	Short:   "Pin VCS sources in PKGBUILDs to immutable hashes",
	Version: Version,
	Long: `vcspin resolves floating git tag references in a PKGBUILD's source
array into immutable object hashes and rewrites the PKGBUILD in place.

The repositories referenced by the vcspins array must already be checked
out next to the PKGBUILD; vcspin never clones or touches the network.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch verbosity {
		case 0:
			log.SetLevel(log.WarnLevel)
		case 1:
			log.SetLevel(log.InfoLevel)
		default:
			log.SetLevel(log.DebugLevel)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
}
