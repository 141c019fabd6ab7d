package install

import (
	"fmt"
	"os"

	"github.com/conn-castle/ucrtfix/internal/messages"
)

// TempSuffix is appended to the target path to name the sibling file written before the rename.
const TempSuffix = ".new"

var (
	osOpenFile = os.OpenFile
	osRename   = os.Rename
	osRemove   = os.Remove
)

// WriteAtomic replaces path with data by writing path+TempSuffix and renaming it over path.
// Readers of path see either the previous entry or the complete new content, never a partial write.
// A symlink at path is replaced by a regular file; its target is not touched.
func WriteAtomic(path string, data []byte) error {
	tmp := path + TempSuffix
	file, err := osOpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf(messages.InstallWriteTempFmt, tmp, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = osRemove(tmp)
		}
	}()

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return fmt.Errorf(messages.InstallWriteTempFmt, tmp, err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return fmt.Errorf(messages.InstallSyncTempFmt, tmp, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf(messages.InstallCloseTempFmt, tmp, err)
	}
	if err := osRename(tmp, path); err != nil {
		return fmt.Errorf(messages.InstallRenameFmt, tmp, path, err)
	}
	committed = true
	return nil
}
