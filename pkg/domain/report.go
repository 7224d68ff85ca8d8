package domain

import "time"

// CaseStatus is the outcome of one test case.
type CaseStatus string

const (
	CasePassed  CaseStatus = "passed"
	CaseFailed  CaseStatus = "failed"
	CaseSkipped CaseStatus = "skipped"
)

// CaseResult records the outcome of one test case.
type CaseResult struct {
	Name     string        `json:"name"`
	Status   CaseStatus    `json:"status"`
	Errors   []string      `json:"errors,omitempty"`
	Logs     []string      `json:"logs,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Report is the outcome of a suite run on one device.
type Report struct {
	ID         string       `json:"id"`
	Device     DeviceInfo   `json:"device"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Results    []CaseResult `json:"results"`
}

// Count returns how many cases ended with status.
func (r *Report) Count(status CaseStatus) int {
	n := 0
	for _, c := range r.Results {
		if c.Status == status {
			n++
		}
	}
	return n
}

// Passed reports whether no case failed.
func (r *Report) Passed() bool {
	return r.Count(CaseFailed) == 0
}
