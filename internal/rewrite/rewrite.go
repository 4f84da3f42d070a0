// Package rewrite substitutes resolved pins into a PKGBUILD, line by
// line, leaving everything else untouched.
package rewrite

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"vcspin/internal/gitpin"
	"vcspin/internal/pkgbuild"
)

// Manifest rewrites the PKGBUILD text. _commit= and _tag= assignments
// are replaced with the first declared pin's hashes, the source array is
// re-emitted with pinned entries substituted, and every other line is
// copied through verbatim. In pin-commit mode a pinned git source gets
// its tag cleared and the commit hash set; otherwise the tag is replaced
// with the tag object hash.
//
// The sources slice is mutated in place; the caller must not hold on to
// its entries across the call.
func Manifest(text string, sources []pkgbuild.Input, pins *gitpin.Set, pinCommit bool) (string, error) {
	var out strings.Builder
	sc := bufio.NewScanner(strings.NewReader(text))
	// the default token limit is 64KiB; a source array squeezed onto one
	// line can exceed that
	sc.Buffer(nil, len(text)+1)

	for sc.Scan() {
		line := sc.Text()

		switch {
		case strings.HasPrefix(line, "_commit"):
			name, pin, ok := pins.First()
			if !ok {
				return "", fmt.Errorf("can't use _commit= if no vcspins= is set")
			}
			log.Debug("using pin for _commit=", "pin", name)
			fmt.Fprintf(&out, "_commit=%s\n", pin.CommitHash)

		case strings.HasPrefix(line, "_tag"):
			name, pin, ok := pins.First()
			if !ok {
				return "", fmt.Errorf("can't use _tag= if no vcspins= is set")
			}
			log.Debug("using pin for _tag=", "pin", name)
			fmt.Fprintf(&out, "_tag=%s\n", pin.TagHash)

		case strings.HasPrefix(line, "source="):
			// skip the original array
			for sc.Scan() {
				if strings.HasSuffix(sc.Text(), ")") {
					break
				}
			}
			if err := writeSources(&out, sources, pins, pinCommit); err != nil {
				return "", err
			}

		default:
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("reading manifest: %w", err)
	}

	return out.String(), nil
}

func writeSources(out *strings.Builder, sources []pkgbuild.Input, pins *gitpin.Set, pinCommit bool) error {
	out.WriteString("source=(\n")
	for i := range sources {
		filename, err := sources[i].Filename()
		if err != nil {
			return fmt.Errorf("source entry %q: %w", sources[i], err)
		}

		if pin, ok := pins.Get(filename); ok {
			src := pin.Source
			if pinCommit {
				src.Tag = ""
				src.Commit = pin.CommitHash
			} else {
				src.Tag = pin.TagHash
			}
			sources[i].Source = src
		}

		fmt.Fprintf(out, "    \"%s\"\n", sources[i])
	}
	out.WriteString(")\n")
	return nil
}
