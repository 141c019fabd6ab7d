package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/conn-castle/ucrtfix/internal/cabextract"
	"github.com/conn-castle/ucrtfix/internal/messages"
	"github.com/conn-castle/ucrtfix/internal/prefix"
)

var (
	scanFunc        = prefix.Scan
	expandRootsFunc = prefix.ExpandRoots
	readlinkFunc    = os.Readlink
)

// Prober reports whether the extraction tool can be executed.
type Prober interface {
	Probe(ctx context.Context) (string, error)
}

// CheckCabextract verifies that the extraction tool is callable.
func CheckCabextract(ctx context.Context, tool Prober) Result {
	version, err := tool.Probe(ctx)
	switch {
	case errors.Is(err, cabextract.ErrNotInstalled):
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameCabextract,
			Message:        messages.DoctorCabextractMissing,
			Recommendation: messages.DoctorCabextractRecommend,
		}
	case err != nil:
		return Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameCabextract,
			Message:        fmt.Sprintf(messages.DoctorCabextractFailedFmt, err),
			Recommendation: messages.DoctorCabextractRecommend,
		}
	}
	msg := messages.DoctorCabextractFound
	if version != "" {
		msg = fmt.Sprintf("%s (%s)", msg, version)
	}
	return Result{Status: StatusOK, CheckName: messages.DoctorCheckNameCabextract, Message: msg}
}

// CheckPrefixes scans layout and reports one result per prefix.
// Finding no prefix at all is a warning, not a failure.
func CheckPrefixes(layout prefix.Layout) []Result {
	entries, err := scanFunc(layout)
	if err != nil {
		return []Result{{
			Status:    StatusFail,
			CheckName: messages.DoctorCheckNamePrefixes,
			Message:   fmt.Sprintf(messages.DoctorScanFailedFmt, err),
		}}
	}
	if len(entries) == 0 {
		searched := strings.Join(layout.Roots, ", ")
		if roots, err := expandRootsFunc(layout); err == nil {
			searched = strings.Join(roots, ", ")
		}
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNamePrefixes,
			Message:        messages.DoctorNoPrefixesFound,
			Recommendation: fmt.Sprintf(messages.DoctorNoPrefixesRecommendFmt, searched),
		}}
	}

	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		switch e.State {
		case prefix.StatePresent:
			results = append(results, Result{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNamePrefix,
				Message:   fmt.Sprintf(messages.DoctorPresentFmt, e.Path),
			})
		case prefix.StateStaleLink:
			target, err := readlinkFunc(e.Path)
			if err != nil {
				target = "?"
			}
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNamePrefix,
				Message:        fmt.Sprintf(messages.DoctorStaleLinkFmt, e.Path, target),
				Recommendation: messages.DoctorNeedsInstallRecommend,
			})
		default:
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNamePrefix,
				Message:        fmt.Sprintf(messages.DoctorMissingFmt, e.Path),
				Recommendation: messages.DoctorNeedsInstallRecommend,
			})
		}
	}
	return results
}
