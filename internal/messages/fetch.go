package messages

// Artifact fetch messages.
const (
	FetchCreateTempDirFmt  = "create temp dir: %w"
	FetchCreateFileFmt     = "create %s: %w"
	FetchCloseFileFmt      = "close %s: %w"
	FetchReadArtifactFmt   = "read extracted %s: %w"
	FetchEmptyArtifactFmt  = "extracted %s is empty"
	FetchSourceRequired    = "fetch source is incomplete: url, installer, cabinet entry and library name are required"
	FetchExtractorRequired = "fetch extractor is required"

	FetchDownloadingFmt = ">>> Downloading %s..\n"
	FetchProgressFmt    = "\r>>> %s / %s"
	FetchProgressEnd    = "\n"
	FetchExtractingFmt  = ">>> Extracting %s..\n"

	DownloadCreateRequestFmt    = "create request for %s: %w"
	DownloadFailedFmt           = "download %s: %w"
	DownloadUnexpectedStatusFmt = "download %s: unexpected status %s"
	DownloadTooLargeFmt         = "download %s: response too large (%d bytes > limit %d bytes)"

	CabextractNotInstalled    = "cabextract is not installed"
	CabextractProbeFailedFmt  = "cabextract --version: %w"
	CabextractFailedFmt       = "cabextract %s from %s: %w"
	CabextractFailedOutputFmt = "cabextract %s from %s: %w\n%s"
)
