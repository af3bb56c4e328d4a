package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planRecord(status PlanStatus) *WorkPlanRecord {
	return &WorkPlanRecord{
		ID:          "PLAN-001",
		WorkOrderID: "WO-100",
		WorkCode:    "W1",
		StageCode:   "CUT",
		Status:      status,
		CreatedAt:   time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC),
	}
}

// TestCanPlanWork tests every state of the eligibility decision in priority
// order
func TestCanPlanWork(t *testing.T) {
	tests := []struct {
		name           string
		input          EligibilityInput
		canPlan        bool
		reasonContains string
	}{
		{
			name: "Removed work is blocked regardless of plan state",
			input: EligibilityInput{
				Removal:    &RemovalRecord{Reason: "customer cancelled the order"},
				LatestPlan: planRecord(PlanStatusDraft),
			},
			canPlan:        false,
			reasonContains: "customer cancelled the order",
		},
		{
			name: "Approved submission guard blocks",
			input: EligibilityInput{
				ApprovedSubmissionBlocks: true,
				LatestPlan:               planRecord(PlanStatusRejected),
			},
			canPlan:        false,
			reasonContains: "approved planning submission",
		},
		{
			name: "Draft in progress blocks",
			input: EligibilityInput{
				LatestPlan: planRecord(PlanStatusDraft),
			},
			canPlan:        false,
			reasonContains: "wait for approval or delete",
		},
		{
			name: "Pending approval blocks",
			input: EligibilityInput{
				LatestPlan: planRecord(PlanStatusPendingApproval),
			},
			canPlan:        false,
			reasonContains: "wait for approval or delete",
		},
		{
			name: "Approved but unreported blocks",
			input: EligibilityInput{
				LatestPlan: planRecord(PlanStatusApproved),
			},
			canPlan:        false,
			reasonContains: "report the existing plan",
		},
		{
			name: "Approved and reported not completed allows rework",
			input: EligibilityInput{
				LatestPlan: planRecord(PlanStatusApproved),
				LatestPlanReports: []WorkReportRecord{
					{Worker: WorkerByID("EMP-1"), Completion: CompletionNotCompleted},
				},
			},
			canPlan:        true,
			reasonContains: "rework",
		},
		{
			name: "Approved and reported completed blocks permanently",
			input: EligibilityInput{
				LatestPlan: planRecord(PlanStatusApproved),
				LatestPlanReports: []WorkReportRecord{
					{Worker: WorkerByID("EMP-1"), Completion: CompletionNotCompleted},
					{Worker: WorkerByID("EMP-2"), Completion: CompletionCompleted},
				},
			},
			canPlan:        false,
			reasonContains: "reported completed",
		},
		{
			name: "Rejected plan allows re-planning",
			input: EligibilityInput{
				LatestPlan: planRecord(PlanStatusRejected),
			},
			canPlan:        true,
			reasonContains: "rejected",
		},
		{
			name: "Cancelled plan allows re-planning",
			input: EligibilityInput{
				LatestPlan: planRecord(PlanStatusCancelled),
			},
			canPlan:        true,
			reasonContains: "cancelled",
		},
		{
			name:           "No prior plan allows planning",
			input:          EligibilityInput{},
			canPlan:        true,
			reasonContains: "no prior plan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := CanPlanWork(tt.input)
			assert.Equal(t, tt.canPlan, verdict.CanPlan)
			assert.Contains(t, verdict.Reason, tt.reasonContains)
			if tt.input.LatestPlan != nil {
				assert.Equal(t, tt.input.LatestPlan, verdict.LastPlan)
			}
		})
	}
}

// TestCanPlanWorkRemovalDominates verifies a removal record outranks every
// plan lifecycle state
func TestCanPlanWorkRemovalDominates(t *testing.T) {
	removal := &RemovalRecord{Reason: "withdrawn from production"}
	statuses := []PlanStatus{
		PlanStatusDraft,
		PlanStatusPendingApproval,
		PlanStatusApproved,
		PlanStatusRejected,
		PlanStatusCancelled,
	}

	for _, status := range statuses {
		verdict := CanPlanWork(EligibilityInput{
			Removal:    removal,
			LatestPlan: planRecord(status),
		})
		require.False(t, verdict.CanPlan, "status %s", status)
		assert.Contains(t, verdict.Reason, "withdrawn from production")
	}
}

// TestCanPlanWorkIsPure verifies the check never mutates its input
func TestCanPlanWorkIsPure(t *testing.T) {
	plan := planRecord(PlanStatusApproved)
	original := *plan

	CanPlanWork(EligibilityInput{LatestPlan: plan})

	assert.Equal(t, original, *plan)
}
