package messages

// Installer messages.
const (
	InstallWritingFmt     = ">>> Writing %s..\n"
	InstallSkipPresentFmt = ">>> Already installed: %s (appeared during this run)\n"
	InstallWriteTempFmt   = "write %s: %w"
	InstallSyncTempFmt    = "sync %s: %w"
	InstallCloseTempFmt   = "close %s: %w"
	InstallRenameFmt      = "rename %s to %s: %w"
	InstallEmptyArtifact  = "refusing to install an empty artifact"

	LockOpenFmt    = "open lock %s: %w"
	LockFmt        = "lock %s: %w"
	LockTimeoutFmt = "timed out waiting for lock after %s"
)
