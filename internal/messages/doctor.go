package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check cabextract and report the ucrtbase.dll state of every Proton prefix"

	DoctorHeaderFmt = "Checking %s in Proton prefixes...\n"

	DoctorCheckNameCabextract = "Cabextract"
	DoctorCheckNamePrefix     = "Prefix"
	DoctorCheckNamePrefixes   = "Prefixes"

	DoctorCabextractFound        = "cabextract is installed"
	DoctorCabextractMissing      = "cabextract could not be executed"
	DoctorCabextractRecommend    = "Install cabextract with your distribution's package manager (e.g. `apt install cabextract`)."
	DoctorCabextractFailedFmt    = "cabextract probe failed: %v"
	DoctorNoPrefixesFound        = "No Proton prefixes found"
	DoctorNoPrefixesRecommendFmt = "Launch the game once through Steam so its prefix is created. Searched: %s"
	DoctorPresentFmt             = "Installed: %s"
	DoctorMissingFmt             = "Missing: %s"
	DoctorStaleLinkFmt           = "Symlink: %s -> %s"
	DoctorNeedsInstallRecommend  = "Run `ucrtfix` to install ucrtbase.dll."
	DoctorScanFailedFmt          = "Scan failed: %v"

	DoctorFailureSummary = "Some checks failed. Please address the items above."
	DoctorFailureError   = "doctor checks failed"
	DoctorSuccessSummary = "All prefixes have ucrtbase.dll installed."

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-10s %s\n"
	DoctorRecommendationPrefix = "       -> "
)
