// Package pkgbuild provides the data model for PKGBUILD source entries.
package pkgbuild

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Source is one downloadable artifact from a PKGBUILD source array.
// It is either a local file, a plain download URL, or a git source with
// VCS metadata encoded into the URL.
type Source interface {
	// Filename returns the filename the artifact is stored under.
	Filename() (string, error)
	// String returns the entry exactly as it appears in the source array.
	String() string
}

// FileSource is a plain local path.
type FileSource string

func (s FileSource) Filename() (string, error) {
	name := path.Base(string(s))
	if name == "" || name == "." || name == ".." || name == "/" {
		return "", fmt.Errorf("entry %q has no filename", string(s))
	}
	return name, nil
}

func (s FileSource) String() string { return string(s) }

// URLSource is a plain http(s)/ftp download URL.
type URLSource string

func (s URLSource) Filename() (string, error) {
	return urlFilename(string(s))
}

func (s URLSource) String() string { return string(s) }

// urlFilename returns the last path segment of a URL.
func urlFilename(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing url %q: %w", rawURL, err)
	}
	if u.Path == "" {
		return "", fmt.Errorf("url %q contains no path", rawURL)
	}
	segments := strings.Split(u.Path, "/")
	name := segments[len(segments)-1]
	if name == "" {
		return "", fmt.Errorf("url %q has no filename", rawURL)
	}
	return name, nil
}

// ParseSource classifies a raw entry by its URL scheme. Entries without a
// scheme are local files; unknown schemes are an error.
func ParseSource(s string) (Source, error) {
	scheme, _, found := strings.Cut(s, "://")
	if !found {
		return FileSource(s), nil
	}
	switch {
	case scheme == "https", scheme == "http", scheme == "ftp":
		return URLSource(s), nil
	case strings.HasPrefix(scheme, "git"):
		return ParseGitSource(s), nil
	default:
		return nil, fmt.Errorf("unknown scheme %q in %q", scheme, s)
	}
}

// Input is a single source array entry. The PKGBUILD syntax allows an
// explicit filename with "filename::url"; otherwise the filename is
// derived from the source itself.
type Input struct {
	Source Source
	// Name is the explicit filename from the "filename::url" form,
	// empty when the filename is implied by the source.
	Name string
}

// ParseInput splits an entry on the first "::" and parses the remainder
// as a Source. A "::" occurring later in the entry (inside the URL) is
// left alone.
func ParseInput(line string) (Input, error) {
	if name, rest, found := strings.Cut(line, "::"); found {
		source, err := ParseSource(rest)
		if err != nil {
			return Input{}, err
		}
		return Input{Source: source, Name: name}, nil
	}
	source, err := ParseSource(line)
	if err != nil {
		return Input{}, err
	}
	return Input{Source: source}, nil
}

// Filename returns the explicit filename if one was given, otherwise the
// filename derived from the source.
func (in Input) Filename() (string, error) {
	if in.Name != "" {
		return in.Name, nil
	}
	return in.Source.Filename()
}

func (in Input) String() string {
	if in.Name != "" {
		return in.Name + "::" + in.Source.String()
	}
	return in.Source.String()
}
