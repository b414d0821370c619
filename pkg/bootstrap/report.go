package bootstrap

import "time"

// StageStatus is the outcome of one stage in a run
type StageStatus string

const (
	// StatusSuccess means the stage completed
	StatusSuccess StageStatus = "success"

	// StatusSkipped means the stage was skipped by request
	StatusSkipped StageStatus = "skipped"

	// StatusFailed means the stage returned an error
	StatusFailed StageStatus = "failed"

	// StatusNotRun means an earlier stage failed before this one
	StatusNotRun StageStatus = "not-run"
)

// StageResult is the recorded outcome of one stage
type StageResult struct {
	Stage    string
	Status   StageStatus
	Err      error
	Duration time.Duration
}

// Report collects the outcome of a full run
type Report struct {
	Started time.Time
	Results []StageResult
}

func (r *Report) add(result StageResult) {
	r.Results = append(r.Results, result)
}

// Success reports whether every stage either succeeded or was skipped
func (r *Report) Success() bool {
	for _, res := range r.Results {
		if res.Status == StatusFailed || res.Status == StatusNotRun {
			return false
		}
	}
	return true
}

// Failed returns the failing stage result, if any
func (r *Report) Failed() (StageResult, bool) {
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			return res, true
		}
	}
	return StageResult{}, false
}
