// Package install writes the fetched library into prefixes.
package install

import (
	"errors"
	"fmt"
	"io"

	"github.com/conn-castle/ucrtfix/internal/messages"
	"github.com/conn-castle/ucrtfix/internal/prefix"
)

var classifyFunc = prefix.Classify

// Installer writes one artifact into many prefixes.
type Installer struct {
	// Out receives one progress line per prefix; nil discards them.
	Out io.Writer
}

// Install writes data to the path of every entry and returns how many paths were written.
// Each path is classified again under its directory lock; a path that has become a real file
// since the scan is left alone. The first error stops the remaining installs.
func (i Installer) Install(entries []prefix.Entry, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, errors.New(messages.InstallEmptyArtifact)
	}
	out := i.Out
	if out == nil {
		out = io.Discard
	}

	written := 0
	for _, entry := range entries {
		err := withDirLock(entry.System32Dir, func() error {
			state, err := classifyFunc(entry.Path)
			if err != nil {
				return err
			}
			if state == prefix.StatePresent {
				_, _ = fmt.Fprintf(out, messages.InstallSkipPresentFmt, entry.Path)
				return nil
			}
			_, _ = fmt.Fprintf(out, messages.InstallWritingFmt, entry.Path)
			if err := WriteAtomic(entry.Path, data); err != nil {
				return err
			}
			written++
			return nil
		})
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
