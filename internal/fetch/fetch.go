// Package fetch downloads the Visual C++ redistributable and extracts a single library from it.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/ucrtfix/internal/messages"
	"github.com/conn-castle/ucrtfix/internal/terminal"
)

var (
	osMkdirTemp = os.MkdirTemp
	osRemoveAll = os.RemoveAll
	osCreate    = os.Create
	osReadFile  = os.ReadFile
	osGetenv    = os.Getenv
	isTerminal  = terminal.IsTerminal
)

// Source names the remote installer and the two entries extracted from it.
type Source struct {
	// URL is downloaded once per fetch.
	URL string
	// InstallerName is the local file name the download is saved under.
	InstallerName string
	// CabinetEntry is the inner cabinet extracted from the installer.
	CabinetEntry string
	// LibraryName is the file extracted from CabinetEntry and returned.
	LibraryName string
}

// DefaultSource returns the x64 Visual C++ 2015-2019 redistributable, whose cabinet a10 carries ucrtbase.dll.
func DefaultSource() Source {
	const installer = "vc_redist.x64.exe"
	return Source{
		URL:           "https://download.microsoft.com/download/0/6/4/064F84EA-D1DB-4EAA-9A5C-CC2F0FF6A638/" + installer,
		InstallerName: installer,
		CabinetEntry:  "a10",
		LibraryName:   "ucrtbase.dll",
	}
}

func (s Source) valid() bool {
	for _, v := range []string{s.URL, s.InstallerName, s.CabinetEntry, s.LibraryName} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// Extractor extracts the entries of archive matching filter into destDir.
type Extractor interface {
	Extract(ctx context.Context, archive string, filter string, destDir string) error
}

// Fetcher produces the library bytes from Source.
type Fetcher struct {
	Source    Source
	Extractor Extractor
	// Out receives progress lines; nil discards them.
	Out io.Writer
}

// Fetch downloads the installer into a private temporary directory, extracts the library in two passes
// and returns its contents. The temporary directory is removed before Fetch returns, on every path.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !f.Source.valid() {
		return nil, errors.New(messages.FetchSourceRequired)
	}
	if f.Extractor == nil {
		return nil, errors.New(messages.FetchExtractorRequired)
	}
	out := f.Out
	if out == nil {
		out = io.Discard
	}

	tmpDir, err := osMkdirTemp("", "ucrtfix-*")
	if err != nil {
		return nil, fmt.Errorf(messages.FetchCreateTempDirFmt, err)
	}
	defer func() { _ = osRemoveAll(tmpDir) }()

	installer := filepath.Join(tmpDir, f.Source.InstallerName)
	_, _ = fmt.Fprintf(out, messages.FetchDownloadingFmt, f.Source.URL)
	if err := f.download(ctx, installer, out); err != nil {
		return nil, err
	}

	_, _ = fmt.Fprintf(out, messages.FetchExtractingFmt, f.Source.InstallerName)
	if err := f.Extractor.Extract(ctx, installer, f.Source.CabinetEntry, tmpDir); err != nil {
		return nil, err
	}
	_, _ = fmt.Fprintf(out, messages.FetchExtractingFmt, f.Source.LibraryName)
	cabinet := filepath.Join(tmpDir, f.Source.CabinetEntry)
	if err := f.Extractor.Extract(ctx, cabinet, f.Source.LibraryName, tmpDir); err != nil {
		return nil, err
	}

	data, err := osReadFile(filepath.Join(tmpDir, f.Source.LibraryName))
	if err != nil {
		return nil, fmt.Errorf(messages.FetchReadArtifactFmt, f.Source.LibraryName, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf(messages.FetchEmptyArtifactFmt, f.Source.LibraryName)
	}
	return data, nil
}

// download saves Source.URL to path, reporting byte progress when out is a terminal.
func (f *Fetcher) download(ctx context.Context, path string, out io.Writer) error {
	file, err := osCreate(path)
	if err != nil {
		return fmt.Errorf(messages.FetchCreateFileFmt, path, err)
	}

	var progress func(done, total int64)
	if isTerminal(out) {
		progress = func(done, total int64) {
			totalText := "?"
			if total > 0 {
				totalText = humanizeBytes(total)
			}
			_, _ = fmt.Fprintf(out, messages.FetchProgressFmt, humanizeBytes(done), totalText)
		}
	}

	err = downloadToFile(ctx, f.Source.URL, file, maxDownloadBytes(osGetenv), progress)
	if progress != nil {
		_, _ = fmt.Fprint(out, messages.FetchProgressEnd)
	}
	if err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf(messages.FetchCloseFileFmt, path, err)
	}
	return nil
}
