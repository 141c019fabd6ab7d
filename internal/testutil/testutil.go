package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CabextractLogName is the file, next to a fake cabextract, that records one line per invocation.
const CabextractLogName = "cabextract.log"

// fakeCabextract emulates the cabextract flags used by ucrtfix. Extracting entry F from archive A
// writes "<contents of A>|F" to <directory>/F, so chained extractions are traceable in tests.
const fakeCabextract = `#!/bin/sh
echo "$@" >> "$(dirname "$0")/` + CabextractLogName + `"
dir=.
filter=
archive=
while [ $# -gt 0 ]; do
  case "$1" in
    --version) echo "cabextract version 1.11"; exit 0 ;;
    --directory) dir="$2"; shift 2 ;;
    --filter) filter="$2"; shift 2 ;;
    *) archive="$1"; shift ;;
  esac
done
if [ ! -f "$archive" ]; then
  echo "$archive: no such file" >&2
  exit 1
fi
printf '%s|%s' "$(cat "$archive")" "$filter" > "$dir/$filter"
`

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) {
	t.Helper()
	WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) {
	t.Helper()
	WriteScript(t, dir, name, fmt.Sprintf("#!/bin/sh\nexit %d\n", exitCode))
}

// WriteScript writes an executable file with the given body and returns its path.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteScript(t *testing.T, dir string, name string, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

// WriteFakeCabextract writes a shell emulation of cabextract into dir and returns its path.
// Every invocation is appended to CabextractLogName in dir; see CabextractCalls.
func WriteFakeCabextract(t *testing.T, dir string) string {
	t.Helper()
	return WriteScript(t, dir, "cabextract", fakeCabextract)
}

// CabextractCalls returns the argument lines recorded by a fake cabextract in dir.
// A missing log means the fake was never invoked.
func CabextractCalls(t *testing.T, dir string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, CabextractLogName))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read cabextract log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}
