package application

import (
	"context"
	"fmt"
	"time"

	"github.com/mes-platform/labor-service/pkg/errors"
	"github.com/mes-platform/labor-service/pkg/logging"
	"github.com/mes-platform/labor-service/pkg/metrics"

	"github.com/mes-platform/labor-service/internal/domain"
)

// PlanningApplicationService handles work-planning and costing use cases
type PlanningApplicationService struct {
	plans         domain.WorkPlanRepository
	removals      domain.RemovalRepository
	shifts        domain.ShiftRepository
	reassignments domain.ReassignmentRepository
	rates         domain.RateRepository
	publisher     domain.EventPublisher
	metrics       *metrics.Metrics
	logger        *logging.Logger
}

// NewPlanningApplicationService creates a new PlanningApplicationService
func NewPlanningApplicationService(
	plans domain.WorkPlanRepository,
	removals domain.RemovalRepository,
	shifts domain.ShiftRepository,
	reassignments domain.ReassignmentRepository,
	rates domain.RateRepository,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
	logger *logging.Logger,
) *PlanningApplicationService {
	return &PlanningApplicationService{
		plans:         plans,
		removals:      removals,
		shifts:        shifts,
		reassignments: reassignments,
		rates:         rates,
		publisher:     publisher,
		metrics:       m,
		logger:        logger,
	}
}

// CreatePlan creates a new draft plan with its worker assignments
func (s *PlanningApplicationService) CreatePlan(ctx context.Context, cmd CreatePlanCommand) (*PlanDTO, error) {
	plan := domain.NewWorkPlan(cmd.PlanID, cmd.WorkOrderID, cmd.WorkCode, cmd.StageCode, cmd.ShiftCode, cmd.PlanDate)

	for _, a := range cmd.Assignments {
		interval, err := domain.ParseInterval("from", a.From, "to", a.To)
		if err != nil {
			return nil, errors.ErrValidation(err.Error())
		}
		if err := plan.Assign(a.EmployeeID, interval); err != nil {
			return nil, errors.ErrValidation(err.Error())
		}
	}

	if err := s.plans.Save(ctx, plan); err != nil {
		s.logger.WithError(err).Error("Failed to save plan", "planId", plan.PlanID)
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	s.logger.Info("Created plan", "planId", plan.PlanID, "workCode", plan.WorkCode, "stageCode", plan.StageCode)
	return ToPlanDTO(plan), nil
}

// GetPlan retrieves a plan by ID
func (s *PlanningApplicationService) GetPlan(ctx context.Context, query GetPlanQuery) (*PlanDTO, error) {
	plan, err := s.plans.FindByID(ctx, query.PlanID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get plan", "planId", query.PlanID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	if plan == nil {
		return nil, errors.ErrNotFoundWithID("plan", query.PlanID)
	}

	return ToPlanDTO(plan), nil
}

// SubmitPlan submits a draft plan for approval
func (s *PlanningApplicationService) SubmitPlan(ctx context.Context, cmd SubmitPlanCommand) (*PlanDTO, error) {
	return s.transition(ctx, cmd.PlanID, "Submitted plan", func(plan *domain.WorkPlan) error {
		return plan.Submit(cmd.SubmittedBy)
	})
}

// ApprovePlan approves a pending plan
func (s *PlanningApplicationService) ApprovePlan(ctx context.Context, cmd ApprovePlanCommand) (*PlanDTO, error) {
	return s.transition(ctx, cmd.PlanID, "Approved plan", func(plan *domain.WorkPlan) error {
		return plan.Approve(cmd.ApprovedBy)
	})
}

// RejectPlan rejects a pending plan
func (s *PlanningApplicationService) RejectPlan(ctx context.Context, cmd RejectPlanCommand) (*PlanDTO, error) {
	return s.transition(ctx, cmd.PlanID, "Rejected plan", func(plan *domain.WorkPlan) error {
		return plan.Reject(cmd.RejectedBy, cmd.Reason)
	})
}

// CancelPlan cancels a plan that has not been finalized
func (s *PlanningApplicationService) CancelPlan(ctx context.Context, cmd CancelPlanCommand) (*PlanDTO, error) {
	return s.transition(ctx, cmd.PlanID, "Cancelled plan", func(plan *domain.WorkPlan) error {
		return plan.Cancel(cmd.CancelledBy)
	})
}

// ReportWork files a worker's reported outcome against an approved plan
func (s *PlanningApplicationService) ReportWork(ctx context.Context, cmd ReportWorkCommand) (*PlanDTO, error) {
	completion := domain.CompletionNotCompleted
	if cmd.Completed {
		completion = domain.CompletionCompleted
	}

	report := domain.WorkReportRecord{
		Worker:           workerRef(cmd.WorkerID, cmd.Deviation, cmd.DeviationReason),
		HoursWorkedToday: cmd.HoursWorkedToday,
		Completion:       completion,
	}

	return s.transition(ctx, cmd.PlanID, "Reported work", func(plan *domain.WorkPlan) error {
		return plan.Report(report)
	})
}

// transition loads a plan, applies a lifecycle mutation and saves it.
func (s *PlanningApplicationService) transition(ctx context.Context, planID, logMsg string, fn func(*domain.WorkPlan) error) (*PlanDTO, error) {
	plan, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get plan", "planId", planID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	if plan == nil {
		return nil, errors.ErrNotFoundWithID("plan", planID)
	}

	if err := fn(plan); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.plans.Save(ctx, plan); err != nil {
		s.logger.WithError(err).Error("Failed to save plan", "planId", planID)
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	// Events are saved to outbox by repository in transaction

	s.logger.Info(logMsg, "planId", planID, "status", string(plan.Status))
	return ToPlanDTO(plan), nil
}

// CheckEligibility decides whether a unit of work may be newly planned
func (s *PlanningApplicationService) CheckEligibility(ctx context.Context, query CheckEligibilityQuery) (*VerdictDTO, error) {
	removal, err := s.removals.FindForWork(ctx, query.StageCode, query.WorkCode, query.WorkOrderID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up removal record", "workCode", query.WorkCode)
		return nil, fmt.Errorf("failed to look up removal record: %w", err)
	}

	blocked, err := s.plans.HasApprovedSubmission(ctx, query.StageCode, query.ShiftCode, query.Date, query.EmployeeID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to check approved submissions", "employeeId", query.EmployeeID)
		return nil, fmt.Errorf("failed to check approved submissions: %w", err)
	}

	latest, err := s.plans.FindLatestForWork(ctx, query.StageCode, query.WorkCode, query.WorkOrderID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get latest plan", "workCode", query.WorkCode)
		return nil, fmt.Errorf("failed to get latest plan: %w", err)
	}

	input := domain.EligibilityInput{
		Removal:                  removal,
		ApprovedSubmissionBlocks: blocked,
	}
	if latest != nil {
		input.LatestPlan = latest.Record()
		input.LatestPlanReports = latest.Reports
	}

	verdict := domain.CanPlanWork(input)
	s.metrics.RecordVerdict(verdict.CanPlan)

	s.logger.Info("Checked planning eligibility",
		"workCode", query.WorkCode, "stageCode", query.StageCode,
		"canPlan", verdict.CanPlan, "reason", verdict.Reason)

	return ToVerdictDTO(verdict), nil
}

// GetWorkerStage reads the worker's reassignment journal for a date and
// derives the present stage plus minutes moved to and from other stages,
// relative to the home stage.
func (s *PlanningApplicationService) GetWorkerStage(ctx context.Context, query WorkerStageQuery) (*WorkerStageDTO, error) {
	journal, err := s.reassignments.JournalFor(ctx, query.EmployeeID, query.Date)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get reassignment journal", "employeeId", query.EmployeeID)
		return nil, fmt.Errorf("failed to get reassignment journal: %w", err)
	}

	toOther, fromOther := domain.TransferMinutes(journal, query.HomeStage)

	return &WorkerStageDTO{
		EmployeeID:       query.EmployeeID,
		Date:             query.Date.Format("2006-01-02"),
		HomeStage:        query.HomeStage,
		CurrentStage:     domain.CurrentStage(query.HomeStage, journal),
		ToOtherMinutes:   toOther,
		FromOtherMinutes: fromOther,
	}, nil
}

// ValidateShiftPlans validates all plans on a stage, shift and date: per
// worker overlap detection, shift coverage including reassignment-away time,
// and reassignment-into coverage.
func (s *PlanningApplicationService) ValidateShiftPlans(ctx context.Context, cmd ValidateShiftPlansCommand) (*ShiftValidationDTO, error) {
	shift, err := s.shifts.FindByCode(ctx, cmd.StageCode, cmd.ShiftCode)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get shift definition", "shiftCode", cmd.ShiftCode)
		return nil, fmt.Errorf("failed to get shift definition: %w", err)
	}
	if shift == nil {
		return nil, errors.ErrNotFoundWithID("shift", cmd.ShiftCode)
	}

	plans, err := s.plans.FindByStageAndDate(ctx, cmd.StageCode, cmd.Date)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list plans", "stageCode", cmd.StageCode)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	slotsByEmployee := make(map[string][]domain.WorkSlot)
	var employeeOrder []string
	for _, plan := range plans {
		if plan.ShiftCode != cmd.ShiftCode {
			continue
		}
		switch plan.Status {
		case domain.PlanStatusRejected, domain.PlanStatusCancelled:
			continue
		}
		for _, a := range plan.Assignments {
			if _, seen := slotsByEmployee[a.EmployeeID]; !seen {
				employeeOrder = append(employeeOrder, a.EmployeeID)
			}
			slotsByEmployee[a.EmployeeID] = append(slotsByEmployee[a.EmployeeID], domain.WorkSlot{
				WorkCode: a.WorkCode,
				Interval: a.Interval,
			})
		}
	}

	var findings []domain.Finding
	var coverage []CoverageDTO

	for _, employeeID := range employeeOrder {
		planned := slotsByEmployee[employeeID]

		for _, f := range domain.DetectOverlap(planned) {
			f.WorkerID = employeeID
			findings = append(findings, f)
		}

		journal, err := s.reassignments.JournalFor(ctx, employeeID, cmd.Date)
		if err != nil {
			s.logger.WithError(err).Error("Failed to get reassignment journal", "employeeId", employeeID)
			return nil, fmt.Errorf("failed to get reassignment journal: %w", err)
		}

		away, into := domain.TransferSlots(journal, cmd.StageCode)

		result := domain.ValidateShiftCoverage(*shift, planned, away)
		coverage = append(coverage, CoverageDTO{
			EmployeeID:       employeeID,
			RequiredMinutes:  result.RequiredMinutes,
			CoveredMinutes:   result.CoveredMinutes,
			ShortfallMinutes: result.ShortfallMinutes,
			Covered:          result.Covered(),
		})
		if !result.Covered() {
			findings = append(findings, domain.Finding{
				Code: domain.FindingShiftUnderCovered,
				Message: fmt.Sprintf("worker %s covers %d of %d shift minutes; %d minutes unaccounted",
					employeeID, result.CoveredMinutes, result.RequiredMinutes, result.ShortfallMinutes),
				WorkerID: employeeID,
			})
		}

		for _, f := range domain.ValidateReassignmentCoverage(into, planned) {
			f.WorkerID = employeeID
			findings = append(findings, f)
		}
	}

	clean := len(findings) == 0
	s.metrics.RecordPlanValidated(clean)
	for _, f := range findings {
		s.metrics.RecordFinding(string(f.Code))
	}

	s.logger.Info("Validated shift plans",
		"stageCode", cmd.StageCode, "shiftCode", cmd.ShiftCode,
		"date", cmd.Date.Format("2006-01-02"),
		"workers", len(employeeOrder), "findings", len(findings))

	return &ShiftValidationDTO{
		StageCode: cmd.StageCode,
		ShiftCode: cmd.ShiftCode,
		Date:      cmd.Date.Format("2006-01-02"),
		Clean:     clean,
		Findings:  ToFindingDTOs(findings),
		Coverage:  coverage,
	}, nil
}

// DistributeStandardCost distributes a standard work's piece-rate value
// across its reported workers proportionally to minutes worked
func (s *PlanningApplicationService) DistributeStandardCost(ctx context.Context, cmd DistributeStandardCostCommand) (*CostAllocationDTO, error) {
	skillCodes := make([]string, len(cmd.Standards))
	standards := make([]domain.SkillStandard, len(cmd.Standards))
	for i, std := range cmd.Standards {
		skillCodes[i] = std.SkillCode
		standards[i] = domain.SkillStandard{SkillCode: std.SkillCode, StandardMinutes: std.StandardMinutes}
	}

	rates, err := s.rates.RatesForSkills(ctx, skillCodes)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get skill rates", "workCode", cmd.WorkCode)
		return nil, fmt.Errorf("failed to get skill rates: %w", err)
	}

	workers := make([]domain.WorkerMinutes, len(cmd.Workers))
	for i, w := range cmd.Workers {
		workers[i] = domain.WorkerMinutes{
			Worker:  workerRef(w.WorkerID, w.Deviation, w.DeviationReason),
			Minutes: w.Minutes,
		}
	}

	allocation, findings := domain.DistributeStandardWork(standards, domain.NewRateTable(rates), cmd.WorkDate, workers)

	return s.finishDistribution(ctx, "piece_rate", cmd.WorkOrderID, cmd.StageCode, cmd.WorkCode, allocation, findings)
}

// DistributeNonStandardCost costs reported hours on a non-standard work from
// monthly salaries, uplifted
func (s *PlanningApplicationService) DistributeNonStandardCost(ctx context.Context, cmd DistributeNonStandardCostCommand) (*CostAllocationDTO, error) {
	var workerIDs []string
	entries := make([]domain.NonStandardEntry, len(cmd.Entries))
	for i, e := range cmd.Entries {
		entries[i] = domain.NonStandardEntry{
			Worker:           workerRef(e.WorkerID, e.Deviation, e.DeviationReason),
			HoursWorkedToday: e.HoursWorkedToday,
		}
		if !e.Deviation {
			workerIDs = append(workerIDs, e.WorkerID)
		}
	}

	salaries, err := s.rates.SalariesFor(ctx, workerIDs)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get salaries", "workOrderId", cmd.WorkOrderID)
		return nil, fmt.Errorf("failed to get salaries: %w", err)
	}

	holidays, err := s.rates.HolidaysIn(ctx, cmd.Year)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get holidays", "year", cmd.Year)
		return nil, fmt.Errorf("failed to get holidays: %w", err)
	}

	allocation, findings := domain.DistributeNonStandardWork(cmd.Year, cmd.Month, entries, salaries, holidays)

	return s.finishDistribution(ctx, "salary", cmd.WorkOrderID, cmd.StageCode, "", allocation, findings)
}

// DistributeLostTime splits each payable lost-time reason's cost across
// workers by the supplied weights
func (s *PlanningApplicationService) DistributeLostTime(ctx context.Context, cmd DistributeLostTimeCommand) (*LostTimeAllocationDTO, error) {
	items := make([]domain.LostTimeItem, len(cmd.Items))
	for i, item := range cmd.Items {
		items[i] = domain.LostTimeItem{ReasonCode: item.ReasonCode, Payable: item.Payable, TotalCost: item.TotalCost}
	}

	weights := make([]domain.WorkerWeight, len(cmd.Weights))
	for i, w := range cmd.Weights {
		weights[i] = domain.WorkerWeight{Worker: domain.WorkerByID(w.WorkerID), Weight: w.Weight}
	}

	allocations := domain.DistributeLostTime(items, weights)

	dto := &LostTimeAllocationDTO{
		WorkOrderID: cmd.WorkOrderID,
		StageCode:   cmd.StageCode,
		Items:       make([]LostTimeItemShareDTO, len(allocations)),
	}
	for i, alloc := range allocations {
		s.metrics.RecordCostDistribution("lost_time", alloc.TotalAmount)
		dto.Items[i] = LostTimeItemShareDTO{
			ReasonCode:  alloc.ReasonCode,
			TotalAmount: alloc.TotalAmount,
			Shares:      ToWorkerShareDTOs(alloc.Shares),
		}
	}

	s.logger.Info("Distributed lost time",
		"workOrderId", cmd.WorkOrderID, "stageCode", cmd.StageCode, "reasons", len(allocations))

	return dto, nil
}

func (s *PlanningApplicationService) finishDistribution(ctx context.Context, kind, workOrderID, stageCode, workCode string, allocation domain.CostAllocation, findings []domain.Finding) (*CostAllocationDTO, error) {
	s.metrics.RecordCostDistribution(kind, allocation.TotalAmount)
	for _, f := range findings {
		s.metrics.RecordFinding(string(f.Code))
	}

	workerCount := 0
	for _, share := range allocation.Shares {
		if !share.Worker.IsDeviation() {
			workerCount++
		}
	}

	if s.publisher != nil {
		event := &domain.CostAllocatedEvent{
			WorkOrderID: workOrderID,
			StageCode:   stageCode,
			WorkCode:    workCode,
			Kind:        kind,
			TotalAmount: allocation.TotalAmount,
			WorkerCount: workerCount,
			AllocatedAt: time.Now(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WithError(err).Warn("Failed to publish cost allocation event", "workOrderId", workOrderID)
		}
	}

	s.logger.Info("Distributed cost",
		"kind", kind, "workOrderId", workOrderID, "stageCode", stageCode,
		"totalAmount", allocation.TotalAmount, "workers", workerCount)

	return &CostAllocationDTO{
		WorkOrderID: workOrderID,
		StageCode:   stageCode,
		Kind:        kind,
		TotalAmount: allocation.TotalAmount,
		Shares:      ToWorkerShareDTOs(allocation.Shares),
		Findings:    ToFindingDTOs(findings),
	}, nil
}
