// Package dataset downloads the city trip files into the data directory from
// a GitHub repository, any git remote, or a local directory.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// SourceKind identifies where city files are fetched from
type SourceKind string

const (
	SourceGitHub SourceKind = "github"
	SourceGit    SourceKind = "git"
	SourceLocal  SourceKind = "local"
)

var (
	ErrNoSource      = errors.New("no dataset source given")
	ErrInvalidSource = errors.New("unrecognized dataset source")
)

// Source is a parsed dataset location
type Source struct {
	Kind SourceKind

	// URL is the clone URL for git sources and the directory for local ones
	URL string

	// GitHub coordinates
	Owner string
	Repo  string

	// Ref is a branch or tag; empty means the default branch
	Ref string

	// Dir is the directory inside the repository holding the CSV files
	Dir string
}

func (s Source) String() string {
	switch s.Kind {
	case SourceGitHub:
		out := s.Owner + "/" + s.Repo
		if s.Ref != "" {
			out += "@" + s.Ref
		}
		if s.Dir != "" {
			out += ":" + s.Dir
		}
		return out
	default:
		return s.URL
	}
}

// ParseSource recognizes:
//
//	/path/to/dir                                  local directory
//	https://github.com/owner/repo[/tree/ref/dir]  GitHub repository
//	owner/repo[@ref][:dir]                        GitHub shorthand
//	https://host/repo.git, git@host:repo.git      any other git remote
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{}, ErrNoSource
	}

	if info, err := os.Stat(raw); err == nil && info.IsDir() {
		return Source{Kind: SourceLocal, URL: raw}, nil
	}

	if strings.Contains(raw, "github.com") {
		return parseGitHubURL(raw)
	}

	if isRemoteURL(raw) {
		return Source{Kind: SourceGit, URL: raw}, nil
	}

	if src, ok := parseShorthand(raw); ok {
		return src, nil
	}

	return Source{}, fmt.Errorf("%w: %q", ErrInvalidSource, raw)
}

// parseGitHubURL handles https, ssh and scp-style GitHub URLs
func parseGitHubURL(raw string) (Source, error) {
	url := raw
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "ssh://")
	url = strings.TrimPrefix(url, "git@")

	// Replace colon with slash for SSH URLs
	url = strings.Replace(url, "github.com:", "github.com/", 1)
	url = strings.TrimPrefix(url, "www.")
	url = strings.TrimPrefix(url, "github.com/")
	url = strings.TrimSuffix(url, "/")

	parts := strings.Split(url, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Source{}, fmt.Errorf("%w: %q", ErrInvalidSource, raw)
	}

	src := Source{
		Kind:  SourceGitHub,
		Owner: parts[0],
		Repo:  strings.TrimSuffix(parts[1], ".git"),
	}

	// https://github.com/owner/repo/tree/<ref>/<dir...>
	if len(parts) >= 4 && parts[2] == "tree" {
		src.Ref = parts[3]
		src.Dir = strings.Join(parts[4:], "/")
	}
	return src, nil
}

// parseShorthand handles owner/repo[@ref][:dir]
func parseShorthand(raw string) (Source, bool) {
	rest := raw
	var dir, ref string
	if i := strings.Index(rest, ":"); i >= 0 {
		rest, dir = rest[:i], strings.Trim(rest[i+1:], "/")
	}
	if i := strings.Index(rest, "@"); i >= 0 {
		rest, ref = rest[:i], rest[i+1:]
	}

	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Source{}, false
	}
	return Source{Kind: SourceGitHub, Owner: parts[0], Repo: parts[1], Ref: ref, Dir: dir}, true
}

func isRemoteURL(raw string) bool {
	for _, prefix := range []string{"https://", "http://", "ssh://", "git://", "file://", "git@"} {
		if strings.HasPrefix(raw, prefix) {
			return true
		}
	}
	return strings.HasSuffix(raw, ".git")
}
