package pkgbuild

import "strings"

// GitSource is a VCS-backed source. Commit, tag, and the signature flag
// are carried in the entry itself, appended to the base URL as
// url[?signed][#commit=<hash>][#tag=<name>].
type GitSource struct {
	URL    string
	Commit string
	Tag    string
	Signed bool
}

// ParseGitSource decodes the fragment suffixes from a git source entry.
// The trailing ?signed marker is stripped twice: once up front, and once
// more after the commit/tag suffixes are gone, which covers entries that
// put the marker before a fragment.
func ParseGitSource(s string) GitSource {
	var src GitSource

	if rest, found := strings.CutSuffix(s, "?signed"); found {
		src.Signed = true
		s = rest
	}

	if idx := strings.LastIndex(s, "#commit="); idx >= 0 {
		src.Commit = s[idx+len("#commit="):]
		s = s[:idx]
	}

	if idx := strings.LastIndex(s, "#tag="); idx >= 0 {
		src.Tag = s[idx+len("#tag="):]
		s = s[:idx]
	}

	if rest, found := strings.CutSuffix(s, "?signed"); found {
		src.Signed = true
		s = rest
	}

	src.URL = s
	return src
}

func (g GitSource) Filename() (string, error) {
	return urlFilename(g.URL)
}

func (g GitSource) String() string {
	var b strings.Builder
	b.WriteString(g.URL)
	if g.Signed {
		b.WriteString("?signed")
	}
	if g.Commit != "" {
		b.WriteString("#commit=")
		b.WriteString(g.Commit)
	}
	if g.Tag != "" {
		b.WriteString("#tag=")
		b.WriteString(g.Tag)
	}
	return b.String()
}
