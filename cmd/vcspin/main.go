// vcspin is a CLI tool for pinning VCS sources in PKGBUILDs to immutable hashes.
package main

import "vcspin/cmd/vcspin/cmd"

func main() {
	cmd.Execute()
}
