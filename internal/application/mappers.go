package application

import (
	"github.com/mes-platform/labor-service/internal/domain"
)

// ToPlanDTO converts a domain work plan to a PlanDTO
func ToPlanDTO(plan *domain.WorkPlan) *PlanDTO {
	assignments := make([]AssignmentDTO, len(plan.Assignments))
	for i, a := range plan.Assignments {
		assignments[i] = AssignmentDTO{
			EmployeeID: a.EmployeeID,
			WorkCode:   a.WorkCode,
			From:       a.Interval.From.String(),
			To:         a.Interval.To.String(),
			Minutes:    a.Interval.Minutes(),
		}
	}

	reports := make([]ReportDTO, len(plan.Reports))
	for i, r := range plan.Reports {
		reports[i] = ReportDTO{
			WorkerID:         r.Worker.ID,
			Deviation:        r.Worker.Deviation,
			DeviationReason:  r.Worker.DeviationReason,
			HoursWorkedToday: r.HoursWorkedToday,
			Completion:       string(r.Completion),
		}
	}

	return &PlanDTO{
		PlanID:      plan.PlanID,
		WorkOrderID: plan.WorkOrderID,
		WorkCode:    plan.WorkCode,
		StageCode:   plan.StageCode,
		ShiftCode:   plan.ShiftCode,
		PlanDate:    plan.PlanDate,
		Status:      string(plan.Status),
		Assignments: assignments,
		Reports:     reports,
		CreatedAt:   plan.CreatedAt,
		UpdatedAt:   plan.UpdatedAt,
	}
}

// ToVerdictDTO converts an eligibility verdict to a VerdictDTO
func ToVerdictDTO(v domain.Verdict) *VerdictDTO {
	dto := &VerdictDTO{
		CanPlan: v.CanPlan,
		Reason:  v.Reason,
	}
	if v.LastPlan != nil {
		dto.LastPlan = &LastPlanDTO{
			PlanID:      v.LastPlan.ID,
			WorkOrderID: v.LastPlan.WorkOrderID,
			WorkCode:    v.LastPlan.WorkCode,
			StageCode:   v.LastPlan.StageCode,
			Status:      string(v.LastPlan.Status),
			CreatedAt:   v.LastPlan.CreatedAt,
		}
	}
	return dto
}

// ToFindingDTOs converts domain findings to FindingDTOs
func ToFindingDTOs(findings []domain.Finding) []FindingDTO {
	dtos := make([]FindingDTO, len(findings))
	for i, f := range findings {
		dtos[i] = FindingDTO{
			Code:       string(f.Code),
			Message:    f.Message,
			FirstWork:  f.FirstWork,
			SecondWork: f.SecondWork,
			WorkerID:   f.WorkerID,
			SkillCode:  f.SkillCode,
		}
	}
	return dtos
}

// ToWorkerShareDTOs converts domain worker shares to WorkerShareDTOs
func ToWorkerShareDTOs(shares []domain.WorkerShare) []WorkerShareDTO {
	dtos := make([]WorkerShareDTO, len(shares))
	for i, s := range shares {
		dtos[i] = WorkerShareDTO{
			WorkerID:        s.Worker.ID,
			Deviation:       s.Worker.Deviation,
			DeviationReason: s.Worker.DeviationReason,
			Amount:          s.Amount,
		}
	}
	return dtos
}

func workerRef(id string, deviation bool, reason string) domain.WorkerRef {
	if deviation {
		return domain.DeviationEntry(reason)
	}
	return domain.WorkerByID(id)
}
