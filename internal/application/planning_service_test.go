package application

import (
	"context"
	"errors"
	"testing"
	"time"

	sharedErrors "github.com/mes-platform/labor-service/pkg/errors"
	"github.com/mes-platform/labor-service/pkg/logging"
	"github.com/mes-platform/labor-service/pkg/metrics"

	"github.com/mes-platform/labor-service/internal/domain"
)

type stubPlanRepo struct {
	SaveFn                  func(ctx context.Context, plan *domain.WorkPlan) error
	FindByIDFn              func(ctx context.Context, planID string) (*domain.WorkPlan, error)
	FindLatestForWorkFn     func(ctx context.Context, stageCode, workCode, workOrderID string) (*domain.WorkPlan, error)
	FindByStageAndDateFn    func(ctx context.Context, stageCode string, date time.Time) ([]*domain.WorkPlan, error)
	HasApprovedSubmissionFn func(ctx context.Context, stageCode, shiftCode string, date time.Time, employeeID string) (bool, error)
}

func (s *stubPlanRepo) Save(ctx context.Context, plan *domain.WorkPlan) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, plan)
	}
	return nil
}

func (s *stubPlanRepo) FindByID(ctx context.Context, planID string) (*domain.WorkPlan, error) {
	if s.FindByIDFn != nil {
		return s.FindByIDFn(ctx, planID)
	}
	return nil, nil
}

func (s *stubPlanRepo) FindLatestForWork(ctx context.Context, stageCode, workCode, workOrderID string) (*domain.WorkPlan, error) {
	if s.FindLatestForWorkFn != nil {
		return s.FindLatestForWorkFn(ctx, stageCode, workCode, workOrderID)
	}
	return nil, nil
}

func (s *stubPlanRepo) FindByStageAndDate(ctx context.Context, stageCode string, date time.Time) ([]*domain.WorkPlan, error) {
	if s.FindByStageAndDateFn != nil {
		return s.FindByStageAndDateFn(ctx, stageCode, date)
	}
	return nil, nil
}

func (s *stubPlanRepo) HasApprovedSubmission(ctx context.Context, stageCode, shiftCode string, date time.Time, employeeID string) (bool, error) {
	if s.HasApprovedSubmissionFn != nil {
		return s.HasApprovedSubmissionFn(ctx, stageCode, shiftCode, date, employeeID)
	}
	return false, nil
}

type stubRemovalRepo struct {
	FindForWorkFn func(ctx context.Context, stageCode, workCode, workOrderID string) (*domain.RemovalRecord, error)
}

func (s *stubRemovalRepo) FindForWork(ctx context.Context, stageCode, workCode, workOrderID string) (*domain.RemovalRecord, error) {
	if s.FindForWorkFn != nil {
		return s.FindForWorkFn(ctx, stageCode, workCode, workOrderID)
	}
	return nil, nil
}

type stubShiftRepo struct {
	FindByCodeFn func(ctx context.Context, stageCode, shiftCode string) (*domain.ShiftDefinition, error)
}

func (s *stubShiftRepo) FindByCode(ctx context.Context, stageCode, shiftCode string) (*domain.ShiftDefinition, error) {
	if s.FindByCodeFn != nil {
		return s.FindByCodeFn(ctx, stageCode, shiftCode)
	}
	return nil, nil
}

type stubReassignmentRepo struct {
	JournalForFn func(ctx context.Context, employeeID string, date time.Time) ([]domain.ReassignmentEvent, error)
}

func (s *stubReassignmentRepo) JournalFor(ctx context.Context, employeeID string, date time.Time) ([]domain.ReassignmentEvent, error) {
	if s.JournalForFn != nil {
		return s.JournalForFn(ctx, employeeID, date)
	}
	return nil, nil
}

type stubRateRepo struct {
	RatesForSkillsFn func(ctx context.Context, skillCodes []string) ([]domain.SkillRate, error)
	SalariesForFn    func(ctx context.Context, workerIDs []string) (domain.SalaryTable, error)
	HolidaysInFn     func(ctx context.Context, year int) ([]time.Time, error)
}

func (s *stubRateRepo) RatesForSkills(ctx context.Context, skillCodes []string) ([]domain.SkillRate, error) {
	if s.RatesForSkillsFn != nil {
		return s.RatesForSkillsFn(ctx, skillCodes)
	}
	return nil, nil
}

func (s *stubRateRepo) SalariesFor(ctx context.Context, workerIDs []string) (domain.SalaryTable, error) {
	if s.SalariesForFn != nil {
		return s.SalariesForFn(ctx, workerIDs)
	}
	return nil, nil
}

func (s *stubRateRepo) HolidaysIn(ctx context.Context, year int) ([]time.Time, error) {
	if s.HolidaysInFn != nil {
		return s.HolidaysInFn(ctx, year)
	}
	return nil, nil
}

type stubPublisher struct {
	published []domain.DomainEvent
}

func (s *stubPublisher) Publish(_ context.Context, event domain.DomainEvent) error {
	s.published = append(s.published, event)
	return nil
}

func (s *stubPublisher) PublishAll(_ context.Context, events []domain.DomainEvent) error {
	s.published = append(s.published, events...)
	return nil
}

type serviceDeps struct {
	plans         *stubPlanRepo
	removals      *stubRemovalRepo
	shifts        *stubShiftRepo
	reassignments *stubReassignmentRepo
	rates         *stubRateRepo
	publisher     *stubPublisher
}

func newTestService(deps serviceDeps) *PlanningApplicationService {
	if deps.plans == nil {
		deps.plans = &stubPlanRepo{}
	}
	if deps.removals == nil {
		deps.removals = &stubRemovalRepo{}
	}
	if deps.shifts == nil {
		deps.shifts = &stubShiftRepo{}
	}
	if deps.reassignments == nil {
		deps.reassignments = &stubReassignmentRepo{}
	}
	if deps.rates == nil {
		deps.rates = &stubRateRepo{}
	}
	if deps.publisher == nil {
		deps.publisher = &stubPublisher{}
	}
	logger := logging.New(logging.DefaultConfig("test"))
	m := metrics.New(metrics.DefaultConfig("test"))
	return NewPlanningApplicationService(
		deps.plans, deps.removals, deps.shifts, deps.reassignments, deps.rates,
		deps.publisher, m, logger,
	)
}

func mustTime(t *testing.T, value string) domain.TimeOfDay {
	t.Helper()
	tod, err := domain.ParseTimeOfDay("time", value)
	if err != nil {
		t.Fatalf("unexpected parse err: %v", err)
	}
	return tod
}

func interval(t *testing.T, from, to string) domain.Interval {
	t.Helper()
	return domain.Interval{From: mustTime(t, from), To: mustTime(t, to)}
}

func draftPlan(t *testing.T) *domain.WorkPlan {
	t.Helper()
	plan := domain.NewWorkPlan("plan-1", "wo-1", "work-1", "stage-1", "shift-a", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	if err := plan.Assign("emp-1", interval(t, "08:00", "16:00")); err != nil {
		t.Fatalf("unexpected assign err: %v", err)
	}
	return plan
}

func TestPlanningApplicationService_CreatePlan(t *testing.T) {
	var saved *domain.WorkPlan
	plans := &stubPlanRepo{
		SaveFn: func(_ context.Context, plan *domain.WorkPlan) error {
			saved = plan
			return nil
		},
	}
	service := newTestService(serviceDeps{plans: plans})

	dto, err := service.CreatePlan(context.Background(), CreatePlanCommand{
		PlanID:      "plan-1",
		WorkOrderID: "wo-1",
		WorkCode:    "work-1",
		StageCode:   "stage-1",
		ShiftCode:   "shift-a",
		PlanDate:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Assignments: []AssignmentInput{
			{EmployeeID: "emp-1", From: "08:00", To: "16:00"},
		},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if saved == nil {
		t.Fatal("expected plan to be saved")
	}
	if dto == nil || dto.PlanID != "plan-1" || dto.Status != string(domain.PlanStatusDraft) {
		t.Fatalf("unexpected dto: %#v", dto)
	}
	if len(dto.Assignments) != 1 || dto.Assignments[0].Minutes != 480 {
		t.Fatalf("unexpected assignments: %#v", dto.Assignments)
	}
}

func TestPlanningApplicationService_CreatePlan_BadInterval(t *testing.T) {
	service := newTestService(serviceDeps{})

	_, err := service.CreatePlan(context.Background(), CreatePlanCommand{
		PlanID: "plan-1",
		Assignments: []AssignmentInput{
			{EmployeeID: "emp-1", From: "8am", To: "16:00"},
		},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := err.(*sharedErrors.AppError)
	if !ok || appErr.Code != sharedErrors.CodeValidationError {
		t.Fatalf("expected validation AppError, got %#v", err)
	}
}

func TestPlanningApplicationService_GetPlan_NotFound(t *testing.T) {
	service := newTestService(serviceDeps{})

	_, err := service.GetPlan(context.Background(), GetPlanQuery{PlanID: "missing"})
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := err.(*sharedErrors.AppError)
	if !ok || appErr.Code != sharedErrors.CodeNotFound {
		t.Fatalf("expected not found AppError, got %#v", err)
	}
}

func TestPlanningApplicationService_SubmitPlan(t *testing.T) {
	plan := draftPlan(t)
	saved := false
	plans := &stubPlanRepo{
		FindByIDFn: func(_ context.Context, _ string) (*domain.WorkPlan, error) {
			return plan, nil
		},
		SaveFn: func(_ context.Context, _ *domain.WorkPlan) error {
			saved = true
			return nil
		},
	}
	service := newTestService(serviceDeps{plans: plans})

	dto, err := service.SubmitPlan(context.Background(), SubmitPlanCommand{PlanID: "plan-1", SubmittedBy: "supervisor-1"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !saved {
		t.Fatal("expected plan to be saved")
	}
	if dto.Status != string(domain.PlanStatusPendingApproval) {
		t.Fatalf("unexpected status: %s", dto.Status)
	}
	if len(plan.GetDomainEvents()) != 1 {
		t.Fatalf("expected one domain event, got %d", len(plan.GetDomainEvents()))
	}
}

func TestPlanningApplicationService_SubmitPlan_NotDraft(t *testing.T) {
	plan := draftPlan(t)
	if err := plan.Submit("supervisor-1"); err != nil {
		t.Fatalf("unexpected submit err: %v", err)
	}
	plans := &stubPlanRepo{
		FindByIDFn: func(_ context.Context, _ string) (*domain.WorkPlan, error) {
			return plan, nil
		},
	}
	service := newTestService(serviceDeps{plans: plans})

	_, err := service.SubmitPlan(context.Background(), SubmitPlanCommand{PlanID: "plan-1", SubmittedBy: "supervisor-1"})
	appErr, ok := err.(*sharedErrors.AppError)
	if !ok || appErr.Code != sharedErrors.CodeValidationError {
		t.Fatalf("expected validation AppError, got %#v", err)
	}
}

func TestPlanningApplicationService_RejectThenSaveError(t *testing.T) {
	plan := draftPlan(t)
	if err := plan.Submit("supervisor-1"); err != nil {
		t.Fatalf("unexpected submit err: %v", err)
	}
	plans := &stubPlanRepo{
		FindByIDFn: func(_ context.Context, _ string) (*domain.WorkPlan, error) {
			return plan, nil
		},
		SaveFn: func(_ context.Context, _ *domain.WorkPlan) error {
			return errors.New("save failed")
		},
	}
	service := newTestService(serviceDeps{plans: plans})

	_, err := service.RejectPlan(context.Background(), RejectPlanCommand{PlanID: "plan-1", RejectedBy: "manager-1", Reason: "overlaps"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestPlanningApplicationService_ReportWork(t *testing.T) {
	plan := draftPlan(t)
	if err := plan.Submit("supervisor-1"); err != nil {
		t.Fatalf("unexpected submit err: %v", err)
	}
	if err := plan.Approve("manager-1"); err != nil {
		t.Fatalf("unexpected approve err: %v", err)
	}
	plans := &stubPlanRepo{
		FindByIDFn: func(_ context.Context, _ string) (*domain.WorkPlan, error) {
			return plan, nil
		},
	}
	service := newTestService(serviceDeps{plans: plans})

	dto, err := service.ReportWork(context.Background(), ReportWorkCommand{
		PlanID:           "plan-1",
		WorkerID:         "emp-1",
		HoursWorkedToday: 7.5,
		Completed:        true,
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(dto.Reports) != 1 || dto.Reports[0].Completion != string(domain.CompletionCompleted) {
		t.Fatalf("unexpected reports: %#v", dto.Reports)
	}
}

func TestPlanningApplicationService_CheckEligibility_Removed(t *testing.T) {
	removals := &stubRemovalRepo{
		FindForWorkFn: func(_ context.Context, _, _, _ string) (*domain.RemovalRecord, error) {
			return &domain.RemovalRecord{Reason: "customer cancellation"}, nil
		},
	}
	service := newTestService(serviceDeps{removals: removals})

	dto, err := service.CheckEligibility(context.Background(), CheckEligibilityQuery{
		StageCode: "stage-1", WorkCode: "work-1", WorkOrderID: "wo-1",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if dto.CanPlan {
		t.Fatal("expected planning to be blocked")
	}
}

func TestPlanningApplicationService_CheckEligibility_NoPriorPlan(t *testing.T) {
	service := newTestService(serviceDeps{})

	dto, err := service.CheckEligibility(context.Background(), CheckEligibilityQuery{
		StageCode: "stage-1", WorkCode: "work-1", WorkOrderID: "wo-1",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !dto.CanPlan {
		t.Fatalf("expected planning to be allowed: %#v", dto)
	}
	if dto.LastPlan != nil {
		t.Fatalf("expected no last plan, got %#v", dto.LastPlan)
	}
}

func TestPlanningApplicationService_CheckEligibility_ReportedNotCompleted(t *testing.T) {
	plan := draftPlan(t)
	if err := plan.Submit("supervisor-1"); err != nil {
		t.Fatalf("unexpected submit err: %v", err)
	}
	if err := plan.Approve("manager-1"); err != nil {
		t.Fatalf("unexpected approve err: %v", err)
	}
	if err := plan.Report(domain.WorkReportRecord{
		Worker:           domain.WorkerByID("emp-1"),
		HoursWorkedToday: 8,
		Completion:       domain.CompletionNotCompleted,
	}); err != nil {
		t.Fatalf("unexpected report err: %v", err)
	}

	plans := &stubPlanRepo{
		FindLatestForWorkFn: func(_ context.Context, _, _, _ string) (*domain.WorkPlan, error) {
			return plan, nil
		},
	}
	service := newTestService(serviceDeps{plans: plans})

	dto, err := service.CheckEligibility(context.Background(), CheckEligibilityQuery{
		StageCode: "stage-1", WorkCode: "work-1", WorkOrderID: "wo-1",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !dto.CanPlan {
		t.Fatalf("expected rework planning to be allowed: %#v", dto)
	}
	if dto.LastPlan == nil || dto.LastPlan.PlanID != "plan-1" {
		t.Fatalf("unexpected last plan: %#v", dto.LastPlan)
	}
}

func TestPlanningApplicationService_ValidateShiftPlans_Clean(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	plan := domain.NewWorkPlan("plan-1", "wo-1", "work-1", "stage-1", "shift-a", date)
	if err := plan.Assign("emp-1", interval(t, "08:00", "16:00")); err != nil {
		t.Fatalf("unexpected assign err: %v", err)
	}

	shifts := &stubShiftRepo{
		FindByCodeFn: func(_ context.Context, _, _ string) (*domain.ShiftDefinition, error) {
			return &domain.ShiftDefinition{
				ShiftCode: "shift-a",
				StartTime: mustTime(t, "08:00"),
				EndTime:   mustTime(t, "16:00"),
			}, nil
		},
	}
	plans := &stubPlanRepo{
		FindByStageAndDateFn: func(_ context.Context, _ string, _ time.Time) ([]*domain.WorkPlan, error) {
			return []*domain.WorkPlan{plan}, nil
		},
	}
	service := newTestService(serviceDeps{plans: plans, shifts: shifts})

	dto, err := service.ValidateShiftPlans(context.Background(), ValidateShiftPlansCommand{
		StageCode: "stage-1", ShiftCode: "shift-a", Date: date,
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !dto.Clean || len(dto.Findings) != 0 {
		t.Fatalf("expected clean validation, got %#v", dto)
	}
	if len(dto.Coverage) != 1 || !dto.Coverage[0].Covered {
		t.Fatalf("unexpected coverage: %#v", dto.Coverage)
	}
}

func TestPlanningApplicationService_ValidateShiftPlans_OverlapAndShortfall(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	plan := domain.NewWorkPlan("plan-1", "wo-1", "work-1", "stage-1", "shift-a", date)
	if err := plan.Assign("emp-1", interval(t, "08:00", "12:00")); err != nil {
		t.Fatalf("unexpected assign err: %v", err)
	}
	other := domain.NewWorkPlan("plan-2", "wo-2", "work-2", "stage-1", "shift-a", date)
	if err := other.Assign("emp-1", interval(t, "10:00", "13:00")); err != nil {
		t.Fatalf("unexpected assign err: %v", err)
	}

	shifts := &stubShiftRepo{
		FindByCodeFn: func(_ context.Context, _, _ string) (*domain.ShiftDefinition, error) {
			return &domain.ShiftDefinition{
				ShiftCode: "shift-a",
				StartTime: mustTime(t, "08:00"),
				EndTime:   mustTime(t, "16:00"),
			}, nil
		},
	}
	plans := &stubPlanRepo{
		FindByStageAndDateFn: func(_ context.Context, _ string, _ time.Time) ([]*domain.WorkPlan, error) {
			return []*domain.WorkPlan{plan, other}, nil
		},
	}
	service := newTestService(serviceDeps{plans: plans, shifts: shifts})

	dto, err := service.ValidateShiftPlans(context.Background(), ValidateShiftPlansCommand{
		StageCode: "stage-1", ShiftCode: "shift-a", Date: date,
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if dto.Clean {
		t.Fatal("expected findings")
	}

	codes := make(map[string]int)
	for _, f := range dto.Findings {
		codes[f.Code]++
	}
	if codes[string(domain.FindingOverlappingPlans)] != 1 {
		t.Fatalf("expected one overlap finding, got %#v", dto.Findings)
	}
	if codes[string(domain.FindingShiftUnderCovered)] != 1 {
		t.Fatalf("expected one coverage finding, got %#v", dto.Findings)
	}
}

func TestPlanningApplicationService_ValidateShiftPlans_ReassignedAwayCoversShift(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	plan := domain.NewWorkPlan("plan-1", "wo-1", "work-1", "stage-1", "shift-a", date)
	if err := plan.Assign("emp-1", interval(t, "08:00", "12:00")); err != nil {
		t.Fatalf("unexpected assign err: %v", err)
	}

	shifts := &stubShiftRepo{
		FindByCodeFn: func(_ context.Context, _, _ string) (*domain.ShiftDefinition, error) {
			return &domain.ShiftDefinition{
				ShiftCode: "shift-a",
				StartTime: mustTime(t, "08:00"),
				EndTime:   mustTime(t, "16:00"),
			}, nil
		},
	}
	plans := &stubPlanRepo{
		FindByStageAndDateFn: func(_ context.Context, _ string, _ time.Time) ([]*domain.WorkPlan, error) {
			return []*domain.WorkPlan{plan}, nil
		},
	}
	reassignments := &stubReassignmentRepo{
		JournalForFn: func(_ context.Context, _ string, _ time.Time) ([]domain.ReassignmentEvent, error) {
			return []domain.ReassignmentEvent{
				{FromStage: "stage-1", ToStage: "stage-2", Interval: interval(t, "12:00", "16:00")},
			}, nil
		},
	}
	service := newTestService(serviceDeps{plans: plans, shifts: shifts, reassignments: reassignments})

	dto, err := service.ValidateShiftPlans(context.Background(), ValidateShiftPlansCommand{
		StageCode: "stage-1", ShiftCode: "shift-a", Date: date,
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !dto.Clean {
		t.Fatalf("expected clean validation, got %#v", dto.Findings)
	}
}

func TestPlanningApplicationService_ValidateShiftPlans_ShiftNotFound(t *testing.T) {
	service := newTestService(serviceDeps{})

	_, err := service.ValidateShiftPlans(context.Background(), ValidateShiftPlansCommand{
		StageCode: "stage-1", ShiftCode: "missing", Date: time.Now(),
	})
	appErr, ok := err.(*sharedErrors.AppError)
	if !ok || appErr.Code != sharedErrors.CodeNotFound {
		t.Fatalf("expected not found AppError, got %#v", err)
	}
}

func TestPlanningApplicationService_DistributeStandardCost(t *testing.T) {
	workDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	rates := &stubRateRepo{
		RatesForSkillsFn: func(_ context.Context, _ []string) ([]domain.SkillRate, error) {
			return []domain.SkillRate{
				{SkillCode: "welding", RatePerHour: 120, EffectiveFrom: workDate.AddDate(0, -1, 0)},
			}, nil
		},
	}
	publisher := &stubPublisher{}
	service := newTestService(serviceDeps{rates: rates, publisher: publisher})

	dto, err := service.DistributeStandardCost(context.Background(), DistributeStandardCostCommand{
		WorkOrderID: "wo-1",
		StageCode:   "stage-1",
		WorkCode:    "work-1",
		WorkDate:    workDate,
		Standards:   []SkillStandardInput{{SkillCode: "welding", StandardMinutes: 60}},
		Workers: []WorkerMinutesInput{
			{WorkerID: "emp-1", Minutes: 240},
			{WorkerID: "emp-2", Minutes: 240},
		},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if dto.TotalAmount != 120 {
		t.Fatalf("unexpected total: %v", dto.TotalAmount)
	}
	if len(dto.Shares) != 2 || dto.Shares[0].Amount != 60 || dto.Shares[1].Amount != 60 {
		t.Fatalf("unexpected shares: %#v", dto.Shares)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(publisher.published))
	}
	event, ok := publisher.published[0].(*domain.CostAllocatedEvent)
	if !ok || event.Kind != "piece_rate" || event.WorkerCount != 2 {
		t.Fatalf("unexpected event: %#v", publisher.published[0])
	}
}

func TestPlanningApplicationService_DistributeStandardCost_RateMissing(t *testing.T) {
	service := newTestService(serviceDeps{})

	dto, err := service.DistributeStandardCost(context.Background(), DistributeStandardCostCommand{
		WorkOrderID: "wo-1",
		StageCode:   "stage-1",
		WorkCode:    "work-1",
		WorkDate:    time.Now(),
		Standards:   []SkillStandardInput{{SkillCode: "welding", StandardMinutes: 60}},
		Workers:     []WorkerMinutesInput{{WorkerID: "emp-1", Minutes: 240}},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if dto.TotalAmount != 0 {
		t.Fatalf("unexpected total: %v", dto.TotalAmount)
	}
	if len(dto.Findings) != 1 || dto.Findings[0].Code != string(domain.FindingRateNotFound) {
		t.Fatalf("expected rate finding, got %#v", dto.Findings)
	}
}

func TestPlanningApplicationService_DistributeNonStandardCost(t *testing.T) {
	rates := &stubRateRepo{
		SalariesForFn: func(_ context.Context, _ []string) (domain.SalaryTable, error) {
			// March 2026 has 22 working days without holidays.
			return domain.SalaryTable{"emp-1": 22 * 8 * 100}, nil
		},
	}
	service := newTestService(serviceDeps{rates: rates})

	dto, err := service.DistributeNonStandardCost(context.Background(), DistributeNonStandardCostCommand{
		WorkOrderID: "wo-1",
		StageCode:   "stage-1",
		Year:        2026,
		Month:       time.March,
		Entries:     []NonStandardEntryInput{{WorkerID: "emp-1", HoursWorkedToday: 2}},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	// 100/h hourly rate, uplifted 1.15, 2 hours.
	if dto.TotalAmount != 230 {
		t.Fatalf("unexpected total: %v", dto.TotalAmount)
	}
}

func TestPlanningApplicationService_DistributeLostTime(t *testing.T) {
	service := newTestService(serviceDeps{})

	dto, err := service.DistributeLostTime(context.Background(), DistributeLostTimeCommand{
		WorkOrderID: "wo-1",
		StageCode:   "stage-1",
		Items: []LostTimeItemInput{
			{ReasonCode: "machine-down", Payable: true, TotalCost: 100},
			{ReasonCode: "unexcused", Payable: false, TotalCost: 50},
		},
		Weights: []WorkerWeightInput{
			{WorkerID: "emp-1", Weight: 1},
			{WorkerID: "emp-2", Weight: 1},
		},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(dto.Items) != 1 {
		t.Fatalf("expected only the payable reason, got %#v", dto.Items)
	}
	if dto.Items[0].Shares[0].Amount != 50 || dto.Items[0].Shares[1].Amount != 50 {
		t.Fatalf("unexpected shares: %#v", dto.Items[0].Shares)
	}
}

func TestPlanningApplicationService_GetWorkerStage(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	reassignments := &stubReassignmentRepo{
		JournalForFn: func(_ context.Context, employeeID string, _ time.Time) ([]domain.ReassignmentEvent, error) {
			if employeeID != "emp-1" {
				t.Fatalf("unexpected employee id %q", employeeID)
			}
			return []domain.ReassignmentEvent{
				{FromStage: "stage-1", ToStage: "stage-2", Interval: interval(t, "10:00", "12:00"), OccurredAt: date.Add(10 * time.Hour)},
				{FromStage: "stage-2", ToStage: "stage-1", Interval: interval(t, "13:00", "14:00"), OccurredAt: date.Add(13 * time.Hour)},
			}, nil
		},
	}
	service := newTestService(serviceDeps{reassignments: reassignments})

	dto, err := service.GetWorkerStage(context.Background(), WorkerStageQuery{
		EmployeeID: "emp-1", HomeStage: "stage-1", Date: date,
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if dto.CurrentStage != "stage-1" {
		t.Errorf("expected current stage stage-1, got %q", dto.CurrentStage)
	}
	if dto.ToOtherMinutes != 120 {
		t.Errorf("expected 120 to-other minutes, got %d", dto.ToOtherMinutes)
	}
	if dto.FromOtherMinutes != 60 {
		t.Errorf("expected 60 from-other minutes, got %d", dto.FromOtherMinutes)
	}
	if dto.Date != "2026-03-02" {
		t.Errorf("expected date 2026-03-02, got %q", dto.Date)
	}
}

func TestPlanningApplicationService_GetWorkerStage_EmptyJournal(t *testing.T) {
	service := newTestService(serviceDeps{})

	dto, err := service.GetWorkerStage(context.Background(), WorkerStageQuery{
		EmployeeID: "emp-1", HomeStage: "stage-1", Date: time.Now(),
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if dto.CurrentStage != "stage-1" {
		t.Errorf("expected home stage when journal is empty, got %q", dto.CurrentStage)
	}
	if dto.ToOtherMinutes != 0 || dto.FromOtherMinutes != 0 {
		t.Errorf("expected zero transfer minutes, got %d/%d", dto.ToOtherMinutes, dto.FromOtherMinutes)
	}
}

func TestPlanningApplicationService_GetWorkerStage_JournalError(t *testing.T) {
	reassignments := &stubReassignmentRepo{
		JournalForFn: func(_ context.Context, _ string, _ time.Time) ([]domain.ReassignmentEvent, error) {
			return nil, errors.New("journal unavailable")
		},
	}
	service := newTestService(serviceDeps{reassignments: reassignments})

	if _, err := service.GetWorkerStage(context.Background(), WorkerStageQuery{
		EmployeeID: "emp-1", HomeStage: "stage-1", Date: time.Now(),
	}); err == nil {
		t.Fatal("expected error, got nil")
	}
}
