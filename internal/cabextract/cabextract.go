// Package cabextract runs the cabextract command-line tool.
package cabextract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/conn-castle/ucrtfix/internal/messages"
)

// DefaultBinary is the executable looked up on PATH when Tool.Binary is empty.
const DefaultBinary = "cabextract"

// ErrNotInstalled reports that the cabextract executable could not be located.
var ErrNotInstalled = errors.New(messages.CabextractNotInstalled)

var execCommandContext = exec.CommandContext

// Tool invokes a cabextract executable. The zero value uses DefaultBinary from PATH.
type Tool struct {
	Binary string
}

// Probe runs "cabextract --version" and returns the first line it printed.
// It returns an error wrapping ErrNotInstalled when the executable cannot be found.
func (t Tool) Probe(ctx context.Context) (string, error) {
	out, err := t.run(ctx, "--version")
	if err != nil {
		if errors.Is(err, ErrNotInstalled) {
			return "", err
		}
		return "", fmt.Errorf(messages.CabextractProbeFailedFmt, err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line, nil
}

// Extract extracts the entries of archive matching filter into destDir.
// All paths are passed explicitly; the working directory of the process is left alone.
func (t Tool) Extract(ctx context.Context, archive string, filter string, destDir string) error {
	out, err := t.run(ctx, "--directory", destDir, "--filter", filter, archive)
	if err != nil {
		if detail := strings.TrimSpace(string(out)); detail != "" && !errors.Is(err, ErrNotInstalled) {
			return fmt.Errorf(messages.CabextractFailedOutputFmt, filter, archive, err, detail)
		}
		return fmt.Errorf(messages.CabextractFailedFmt, filter, archive, err)
	}
	return nil
}

// run executes the tool with args and returns its combined output.
func (t Tool) run(ctx context.Context, args ...string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cmd := execCommandContext(ctx, t.binary(), args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		if isNotFound(err) {
			return buf.Bytes(), fmt.Errorf("%w: %w", ErrNotInstalled, err)
		}
		return buf.Bytes(), err
	}
	return buf.Bytes(), nil
}

func (t Tool) binary() string {
	if strings.TrimSpace(t.Binary) == "" {
		return DefaultBinary
	}
	return t.Binary
}

// isNotFound reports whether err means the executable itself is absent, as opposed to a failed run.
func isNotFound(err error) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
