package pkgbuild

import "testing"

func TestParseSource(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Source
		wantErr bool
	}{
		{
			name:  "https url",
			input: "https://example.com/pkg-1.0.tar.gz",
			want:  URLSource("https://example.com/pkg-1.0.tar.gz"),
		},
		{
			name:  "http url",
			input: "http://example.com/pkg-1.0.tar.gz",
			want:  URLSource("http://example.com/pkg-1.0.tar.gz"),
		},
		{
			name:  "ftp url",
			input: "ftp://example.com/pkg-1.0.tar.gz",
			want:  URLSource("ftp://example.com/pkg-1.0.tar.gz"),
		},
		{
			name:  "git scheme",
			input: "git://example.com/repo.git",
			want:  GitSource{URL: "git://example.com/repo.git"},
		},
		{
			name:  "git+https scheme",
			input: "git+https://example.com/repo.git#tag=v1",
			want:  GitSource{URL: "git+https://example.com/repo.git", Tag: "v1"},
		},
		{
			name:  "local file",
			input: "local.patch",
			want:  FileSource("local.patch"),
		},
		{
			name:  "local path with directories",
			input: "patches/fix.patch",
			want:  FileSource("patches/fix.patch"),
		},
		{
			name:    "unknown scheme",
			input:   "svn://example.com/repo",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSource(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSource() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got != tt.want {
				t.Errorf("ParseSource() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestSourceRoundTrip(t *testing.T) {
	inputs := []string{
		"https://example.com/pkg-1.0.tar.gz",
		"ftp://example.com/pkg-1.0.tar.gz",
		"git+https://example.com/repo.git",
		"git+https://example.com/repo.git?signed#tag=v1.2.3",
		"git+https://example.com/repo.git#commit=abc123",
		"local.patch",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, err := ParseSource(input)
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != input {
				t.Errorf("String() = %q, want %q", got.String(), input)
			}
		})
	}
}

func TestSourceFilename(t *testing.T) {
	tests := []struct {
		name    string
		source  Source
		want    string
		wantErr bool
	}{
		{
			name:   "file strips directories",
			source: FileSource("patches/fix.patch"),
			want:   "fix.patch",
		},
		{
			name:   "plain file",
			source: FileSource("fix.patch"),
			want:   "fix.patch",
		},
		{
			name:   "url last segment",
			source: URLSource("https://example.com/dl/pkg-1.0.tar.gz"),
			want:   "pkg-1.0.tar.gz",
		},
		{
			name:    "url without path",
			source:  URLSource("https://example.com"),
			wantErr: true,
		},
		{
			name:    "url with trailing slash",
			source:  URLSource("https://example.com/dl/"),
			wantErr: true,
		},
		{
			name:   "git source ignores vcs metadata",
			source: GitSource{URL: "git+https://example.com/repo.git", Tag: "v1"},
			want:   "repo.git",
		},
		{
			name:    "git source without path",
			source:  GitSource{URL: "git+https://example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.source.Filename()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Filename() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantName string
		wantSrc  string
		wantErr  bool
	}{
		{
			name:     "explicit filename",
			line:     "repo::git+https://example.com/r.git#tag=v1",
			wantName: "repo",
			wantSrc:  "git+https://example.com/r.git#tag=v1",
		},
		{
			name:    "implied filename",
			line:    "https://example.com/pkg-1.0.tar.gz",
			wantSrc: "https://example.com/pkg-1.0.tar.gz",
		},
		{
			name:     "splits on first occurrence only",
			line:     "repo::git+https://example.com/weird::path.git",
			wantName: "repo",
			wantSrc:  "git+https://example.com/weird::path.git",
		},
		{
			name:    "unknown scheme after split",
			line:    "repo::svn://example.com/repo",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInput(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if got.Source.String() != tt.wantSrc {
				t.Errorf("Source = %q, want %q", got.Source.String(), tt.wantSrc)
			}
			if got.String() != tt.line {
				t.Errorf("String() = %q, want %q", got.String(), tt.line)
			}
		})
	}
}

func TestInputFilename(t *testing.T) {
	in, err := ParseInput("repo::git+https://example.com/r.git#tag=v1")
	if err != nil {
		t.Fatal(err)
	}
	name, err := in.Filename()
	if err != nil {
		t.Fatal(err)
	}
	if name != "repo" {
		t.Errorf("Filename() = %q, want %q", name, "repo")
	}

	in, err = ParseInput("git+https://example.com/r.git#tag=v1")
	if err != nil {
		t.Fatal(err)
	}
	name, err = in.Filename()
	if err != nil {
		t.Fatal(err)
	}
	if name != "r.git" {
		t.Errorf("Filename() = %q, want %q", name, "r.git")
	}
}
