package domain

import "fmt"

// EligibilityInput is the snapshot of planning history the eligibility check
// runs over. The caller assembles it from persistence; the check itself reads
// rows and mutates nothing.
type EligibilityInput struct {
	// Removal is set when a removal record exists for the work identity.
	Removal *RemovalRecord

	// ApprovedSubmissionBlocks reports that an approved planning submission
	// for the (stage, shift, date) already includes a worker on the same
	// shift. Enforced by the persistence layer; consumed here as a guard.
	ApprovedSubmissionBlocks bool

	// LatestPlan is the most recent plan record for the work, if any.
	LatestPlan *WorkPlanRecord

	// LatestPlanReports are the report rows filed against LatestPlan.
	LatestPlanReports []WorkReportRecord
}

// Verdict is the outcome of a planning eligibility check.
type Verdict struct {
	CanPlan  bool            `json:"canPlan"`
	Reason   string          `json:"reason"`
	LastPlan *WorkPlanRecord `json:"lastPlan,omitempty"`
}

// CanPlanWork decides whether a unit of work may be newly planned. The states
// are checked in strict priority order and the first match wins: a removal
// record dominates everything, then the approved-submission guard, then the
// lifecycle of the latest plan. The check is a pure query over the supplied
// snapshot.
func CanPlanWork(in EligibilityInput) Verdict {
	if in.Removal != nil {
		return Verdict{
			CanPlan:  false,
			Reason:   fmt.Sprintf("work has been removed from production: %s", in.Removal.Reason),
			LastPlan: in.LatestPlan,
		}
	}

	if in.ApprovedSubmissionBlocks {
		return Verdict{
			CanPlan:  false,
			Reason:   "an approved planning submission already covers this worker on this shift",
			LastPlan: in.LatestPlan,
		}
	}

	if in.LatestPlan == nil {
		return Verdict{CanPlan: true, Reason: "no prior plan exists for this work"}
	}

	switch in.LatestPlan.Status {
	case PlanStatusDraft, PlanStatusPendingApproval:
		return Verdict{
			CanPlan:  false,
			Reason:   "a plan is already in progress; wait for approval or delete the existing plan",
			LastPlan: in.LatestPlan,
		}

	case PlanStatusApproved:
		return approvedPlanVerdict(in)

	case PlanStatusRejected:
		return Verdict{
			CanPlan:  true,
			Reason:   "the last plan was rejected; the work may be planned again",
			LastPlan: in.LatestPlan,
		}

	case PlanStatusCancelled:
		return Verdict{
			CanPlan:  true,
			Reason:   "the last plan was cancelled; the work may be planned again",
			LastPlan: in.LatestPlan,
		}

	default:
		return Verdict{
			CanPlan:  false,
			Reason:   fmt.Sprintf("the last plan is in unrecognized state %q", in.LatestPlan.Status),
			LastPlan: in.LatestPlan,
		}
	}
}

func approvedPlanVerdict(in EligibilityInput) Verdict {
	if len(in.LatestPlanReports) == 0 {
		return Verdict{
			CanPlan:  false,
			Reason:   "the approved plan has not been reported; report the existing plan first",
			LastPlan: in.LatestPlan,
		}
	}

	for _, report := range in.LatestPlanReports {
		if report.Completion == CompletionCompleted {
			return Verdict{
				CanPlan:  false,
				Reason:   "the work was reported completed; it cannot be planned again",
				LastPlan: in.LatestPlan,
			}
		}
	}

	return Verdict{
		CanPlan:  true,
		Reason:   "the work was reported not completed; rework may be planned",
		LastPlan: in.LatestPlan,
	}
}
