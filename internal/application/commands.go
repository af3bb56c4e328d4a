package application

import "time"

// CreatePlanCommand creates a new draft work plan
type CreatePlanCommand struct {
	PlanID      string
	WorkOrderID string
	WorkCode    string
	StageCode   string
	ShiftCode   string
	PlanDate    time.Time
	Assignments []AssignmentInput
}

// AssignmentInput is one worker interval supplied with a plan
type AssignmentInput struct {
	EmployeeID string
	From       string
	To         string
}

// SubmitPlanCommand submits a draft plan for approval
type SubmitPlanCommand struct {
	PlanID      string
	SubmittedBy string
}

// ApprovePlanCommand approves a pending plan
type ApprovePlanCommand struct {
	PlanID     string
	ApprovedBy string
}

// RejectPlanCommand rejects a pending plan
type RejectPlanCommand struct {
	PlanID     string
	RejectedBy string
	Reason     string
}

// CancelPlanCommand cancels a plan that has not been finalized
type CancelPlanCommand struct {
	PlanID      string
	CancelledBy string
}

// ReportWorkCommand files a worker's reported outcome against a plan
type ReportWorkCommand struct {
	PlanID           string
	WorkerID         string
	Deviation        bool
	DeviationReason  string
	HoursWorkedToday float64
	Completed        bool
}

// GetPlanQuery retrieves a plan by ID
type GetPlanQuery struct {
	PlanID string
}

// CheckEligibilityQuery asks whether a unit of work may be newly planned
type CheckEligibilityQuery struct {
	StageCode   string
	WorkCode    string
	WorkOrderID string
	ShiftCode   string
	Date        time.Time
	EmployeeID  string
}

// WorkerStageQuery derives a worker's present stage and transfer totals from
// the reassignment journal for a date
type WorkerStageQuery struct {
	EmployeeID string
	HomeStage  string
	Date       time.Time
}

// ValidateShiftPlansCommand validates all plans on a stage, shift and date
type ValidateShiftPlansCommand struct {
	StageCode string
	ShiftCode string
	Date      time.Time
}

// DistributeStandardCostCommand distributes a standard work's piece-rate
// value across its reported workers
type DistributeStandardCostCommand struct {
	WorkOrderID string
	StageCode   string
	WorkCode    string
	WorkDate    time.Time
	Standards   []SkillStandardInput
	Workers     []WorkerMinutesInput
}

// SkillStandardInput is one budgeted skill time on a work item
type SkillStandardInput struct {
	SkillCode       string
	StandardMinutes float64
}

// WorkerMinutesInput is one worker's reported minutes, or a deviation entry
type WorkerMinutesInput struct {
	WorkerID        string
	Deviation       bool
	DeviationReason string
	Minutes         float64
}

// DistributeNonStandardCostCommand costs reported hours on a non-standard
// work from monthly salaries
type DistributeNonStandardCostCommand struct {
	WorkOrderID string
	StageCode   string
	Year        int
	Month       time.Month
	Entries     []NonStandardEntryInput
}

// NonStandardEntryInput is one worker's reported hours on a non-standard work
type NonStandardEntryInput struct {
	WorkerID         string
	Deviation        bool
	DeviationReason  string
	HoursWorkedToday float64
}

// DistributeLostTimeCommand splits payable lost-time costs across workers
type DistributeLostTimeCommand struct {
	WorkOrderID string
	StageCode   string
	Items       []LostTimeItemInput
	Weights     []WorkerWeightInput
}

// LostTimeItemInput is one lost-time reason with its computed cost
type LostTimeItemInput struct {
	ReasonCode string
	Payable    bool
	TotalCost  float64
}

// WorkerWeightInput is one worker's distribution weight
type WorkerWeightInput struct {
	WorkerID string
	Weight   float64
}
