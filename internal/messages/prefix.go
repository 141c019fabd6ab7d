package messages

// Prefix scanner messages.
const (
	PrefixAlreadyInstalledFmt = ">>> Already installed: %s\n"
	PrefixExpandRootFmt       = "expand steam root %s: %w"
	PrefixGlobFmt             = "expand pattern %s: %w"
	PrefixClassifyFmt         = "inspect %s: %w"
	PrefixLibraryNameRequired = "library name is required"
)
