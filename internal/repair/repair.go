// Package repair runs the scan, fetch and install pipeline.
package repair

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/conn-castle/ucrtfix/internal/messages"
	"github.com/conn-castle/ucrtfix/internal/prefix"
)

// Scanner classifies the library path of every known prefix.
type Scanner interface {
	Scan() ([]prefix.Entry, error)
}

// Fetcher produces the library bytes.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Installer writes the library bytes into the given prefixes and reports how many it wrote.
type Installer interface {
	Install(entries []prefix.Entry, data []byte) (int, error)
}

// Deps wires the pipeline stages together.
type Deps struct {
	Scanner   Scanner
	Fetcher   Fetcher
	Installer Installer
	// LibraryName is used in the summary line; empty means prefix.LibraryName.
	LibraryName string
	Out         io.Writer
}

// Result summarizes a run.
type Result struct {
	Present   []prefix.Entry
	Fetched   bool
	Installed int
}

// Run installs the library into every prefix that lacks a real copy.
// Nothing is downloaded or extracted when every prefix is already installed.
// The prefixes are scanned again after the fetch so the install acts on their current state.
func Run(ctx context.Context, deps Deps) (Result, error) {
	if deps.Scanner == nil {
		return Result{}, errors.New(messages.RepairScannerRequired)
	}
	if deps.Fetcher == nil {
		return Result{}, errors.New(messages.RepairFetcherRequired)
	}
	if deps.Installer == nil {
		return Result{}, errors.New(messages.RepairInstallerRequired)
	}
	out := deps.Out
	if out == nil {
		out = io.Discard
	}
	name := deps.LibraryName
	if name == "" {
		name = prefix.LibraryName
	}

	entries, err := deps.Scanner.Scan()
	if err != nil {
		return Result{}, err
	}
	result := Result{Present: prefix.Present(entries)}
	for _, e := range result.Present {
		_, _ = fmt.Fprintf(out, messages.PrefixAlreadyInstalledFmt, e.Path)
	}
	if len(prefix.NeedsInstall(entries)) == 0 {
		_, _ = fmt.Fprint(out, messages.RepairNothingToDo)
		return result, nil
	}

	data, err := deps.Fetcher.Fetch(ctx)
	if err != nil {
		return result, err
	}
	result.Fetched = true

	entries, err = deps.Scanner.Scan()
	if err != nil {
		return result, err
	}
	installed, err := deps.Installer.Install(prefix.NeedsInstall(entries), data)
	result.Installed = installed
	if err != nil {
		return result, err
	}
	_, _ = fmt.Fprintf(out, messages.RepairInstalledFmt, name, installed)
	return result, nil
}
