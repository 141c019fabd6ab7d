// Package prefix locates Proton prefixes and classifies the library file each one is expected to hold.
package prefix

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/ucrtfix/internal/messages"
)

// LibraryName is the file installed into every prefix by default.
const LibraryName = "ucrtbase.dll"

var (
	expandHome   = homedir.Expand
	globFunc     = filepath.Glob
	osLstat      = os.Lstat
	osStat       = os.Stat
	evalSymlinks = filepath.EvalSymlinks
)

// State classifies the library path inside one system32 directory.
type State string

const (
	// StatePresent means the path is a real file and needs no action.
	StatePresent State = "present"
	// StateMissing means nothing exists at the path.
	StateMissing State = "missing"
	// StateStaleLink means the path is a symbolic link, whether or not its target resolves.
	StateStaleLink State = "stale-link"
)

// Layout describes where prefixes live and which file they should contain.
// Roots may start with "~" and are expanded against the user's home directory.
// System32Globs are relative to each root.
type Layout struct {
	Roots         []string
	System32Globs []string
	LibraryName   string
}

// DefaultLayout returns the Steam library locations and Proton prefix layout searched in production.
func DefaultLayout() Layout {
	return Layout{
		Roots: []string{
			// Ubuntu package 'steam-installer'
			"~/.steam/debian-installation/steamapps",
			"~/.local/share/Steam/steamapps",
		},
		System32Globs: []string{
			"compatdata/*/pfx/drive_c/windows/system32/",
		},
		LibraryName: LibraryName,
	}
}

// Entry is the classified library path of a single prefix.
type Entry struct {
	System32Dir string
	Path        string
	State       State
}

// NeedsInstall reports whether the entry must be (re)written.
func (e Entry) NeedsInstall() bool {
	return e.State == StateMissing || e.State == StateStaleLink
}

// ExpandRoots resolves the home-relative root templates of layout.
func ExpandRoots(layout Layout) ([]string, error) {
	roots := make([]string, 0, len(layout.Roots))
	for _, root := range layout.Roots {
		expanded, err := expandHome(root)
		if err != nil {
			return nil, fmt.Errorf(messages.PrefixExpandRootFmt, root, err)
		}
		roots = append(roots, expanded)
	}
	return roots, nil
}

// FindSystem32Dirs expands every glob of layout against every root and returns the matching directories.
// Roots without matches contribute nothing. Directories reached twice through symlinked roots are reported once.
func FindSystem32Dirs(layout Layout) ([]string, error) {
	roots, err := ExpandRoots(layout)
	if err != nil {
		return nil, err
	}

	var dirs []string
	seen := make(map[string]struct{})
	for _, root := range roots {
		for _, pattern := range layout.System32Globs {
			full := filepath.Join(escapeGlob(root), filepath.FromSlash(pattern))
			matches, err := globFunc(full)
			if err != nil {
				return nil, fmt.Errorf(messages.PrefixGlobFmt, full, err)
			}
			for _, match := range matches {
				info, err := osStat(match)
				if err != nil || !info.IsDir() {
					continue
				}
				key := match
				if resolved, err := evalSymlinks(match); err == nil {
					key = resolved
				}
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				dirs = append(dirs, match)
			}
		}
	}
	return dirs, nil
}

// Classify inspects path without following a final symlink.
func Classify(path string) (State, error) {
	info, err := osLstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return StateMissing, nil
		}
		return "", fmt.Errorf(messages.PrefixClassifyFmt, path, err)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return StateStaleLink, nil
	}
	return StatePresent, nil
}

// Scan classifies the library path of every prefix described by layout.
func Scan(layout Layout) ([]Entry, error) {
	if strings.TrimSpace(layout.LibraryName) == "" {
		return nil, errors.New(messages.PrefixLibraryNameRequired)
	}
	dirs, err := FindSystem32Dirs(layout)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(dirs))
	for _, dir := range dirs {
		path := filepath.Join(dir, layout.LibraryName)
		state, err := Classify(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{System32Dir: dir, Path: path, State: state})
	}
	return entries, nil
}

// NeedsInstall returns the entries that are missing or stale links, in scan order.
func NeedsInstall(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.NeedsInstall() {
			out = append(out, e)
		}
	}
	return out
}

// Present returns the entries that already hold a real file.
func Present(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.State == StatePresent {
			out = append(out, e)
		}
	}
	return out
}

// escapeGlob quotes glob metacharacters so a literal root directory is never treated as a pattern.
func escapeGlob(path string) string {
	var b strings.Builder
	for _, r := range path {
		switch r {
		case '*', '?', '[', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Scanner scans a fixed layout on demand.
type Scanner struct {
	Layout Layout
}

// Scan classifies the library path of every prefix in the scanner's layout.
func (s Scanner) Scan() ([]Entry, error) {
	return Scan(s.Layout)
}
