package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/conn-castle/ucrtfix/internal/messages"
)

// EnvMaxDownloadBytes overrides the download size limit.
const EnvMaxDownloadBytes = "UCRTFIX_MAX_DOWNLOAD_BYTES"

const defaultMaxDownloadBytes = int64(100 * 1024 * 1024) // 100 MiB

// No client timeout: a stalled server blocks until the context is canceled.
var httpClient = &http.Client{}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

// downloadToFile fetches url with a single GET and writes the body to dest.
// progress, when non-nil, is called with the bytes received so far and the expected total (0 if unknown).
func downloadToFile(ctx context.Context, url string, dest io.Writer, maxBytes int64, progress func(done, total int64)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf(messages.DownloadCreateRequestFmt, url, err)
	}
	req.Header.Set("User-Agent", "ucrtfix")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf(messages.DownloadFailedFmt, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf(messages.DownloadUnexpectedStatusFmt, url, resp.Status)
	}
	if resp.ContentLength > maxBytes {
		return fmt.Errorf(messages.DownloadTooLargeFmt, url, resp.ContentLength, maxBytes)
	}

	var reader io.Reader = io.LimitReader(resp.Body, maxBytes+1)
	if progress != nil {
		total := resp.ContentLength
		if total < 0 {
			total = 0
		}
		var done int64
		reader = io.TeeReader(reader, writerFunc(func(p []byte) (int, error) {
			done += int64(len(p))
			progress(done, total)
			return len(p), nil
		}))
	}

	n, err := io.Copy(dest, reader)
	if err != nil {
		return fmt.Errorf(messages.DownloadFailedFmt, url, err)
	}
	if n > maxBytes {
		return fmt.Errorf(messages.DownloadTooLargeFmt, url, n, maxBytes)
	}
	return nil
}

// maxDownloadBytes returns the configured download limit, falling back to the default for unset or invalid values.
func maxDownloadBytes(getenv func(string) string) int64 {
	raw := strings.TrimSpace(getenv(EnvMaxDownloadBytes))
	if raw == "" {
		return defaultMaxDownloadBytes
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return defaultMaxDownloadBytes
	}
	return v
}

// humanizeBytes formats bytes as a human string.
func humanizeBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
