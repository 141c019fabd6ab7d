// Package doctor checks that ucrtfix can run and reports the state of every prefix.
package doctor

// Status is the outcome of a single check.
type Status int

const (
	// StatusOK means the check passed.
	StatusOK Status = iota
	// StatusWarn means the check found something worth attention.
	StatusWarn
	// StatusFail means the check found a problem that blocks or requires a repair.
	StatusFail
)

// Result is one line of the doctor report.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}
