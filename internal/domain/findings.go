package domain

import "fmt"

// FindingCode classifies a validation or calculation finding.
type FindingCode string

const (
	FindingOverlappingPlans      FindingCode = "overlapping_plans"
	FindingShiftUnderCovered     FindingCode = "shift_under_covered"
	FindingReassignmentUnplanned FindingCode = "reassignment_unplanned"
	FindingRateNotFound          FindingCode = "rate_not_found"
	FindingSalaryNotFound        FindingCode = "salary_not_found"
)

// Finding is a non-fatal validation or calculation result. Findings are
// returned, never raised, so a whole shift's plans can be checked in one pass
// and every issue surfaced to the user before submission.
type Finding struct {
	Code    FindingCode `json:"code"`
	Message string      `json:"message"`

	// Populated where the finding concerns specific work items or workers.
	FirstWork  string `json:"firstWork,omitempty"`
	SecondWork string `json:"secondWork,omitempty"`
	WorkerID   string `json:"workerId,omitempty"`
	SkillCode  string `json:"skillCode,omitempty"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}
