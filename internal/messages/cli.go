package messages

// CLI messages for user-facing commands.
const (
	// RootUse is the CLI command name.
	RootUse   = "ucrtfix"
	RootShort = "Repair missing ucrtbase.dll in Proton prefixes"
	RootLong  = "Detect Proton prefixes whose system32/ucrtbase.dll is missing or a symlink,\n" +
		"extract ucrtbase.dll from the Visual C++ redistributable and install it into each one."
	RootVersionFlag = "Print version and exit"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// PreflightCabextractMissing is printed to stderr when cabextract cannot be executed.
	PreflightCabextractMissing = "Could not execute 'cabextract'. Is it installed?"
	PreflightFoundFmt          = ">>> Using %s\n"

	RepairNothingToDo       = ">>> Nothing to do.\n"
	RepairInstalledFmt      = ">>> Installed %s into %d prefix(es).\n"
	RepairScannerRequired   = "repair scanner is required"
	RepairFetcherRequired   = "repair fetcher is required"
	RepairInstallerRequired = "repair installer is required"
)
