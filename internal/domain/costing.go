package domain

import (
	"fmt"
	"math"
	"sort"
	"time"

	cal "github.com/rickar/cal/v2"
)

const (
	// hoursPerWorkingDay converts a daily salary slice into an hourly rate.
	hoursPerWorkingDay = 8.0

	// nonStandardUplift is the factor applied to salary-derived hourly rates
	// for non-standard (salary-costed) work.
	nonStandardUplift = 1.15
)

// SkillRate is one rate row for a skill, applicable from its effective
// ("wef") date onward.
type SkillRate struct {
	SkillCode     string    `bson:"skillCode" json:"skillCode"`
	RatePerHour   float64   `bson:"ratePerHour" json:"ratePerHour"`
	EffectiveFrom time.Time `bson:"effectiveFrom" json:"effectiveFrom"`
}

// RateTable resolves the applicable rate for a skill on a date: the most
// recent rate whose effective date is on or before the date, never a
// future-dated one.
type RateTable struct {
	bySkill map[string][]SkillRate
}

// NewRateTable builds a rate table from rate rows in any order.
func NewRateTable(rates []SkillRate) RateTable {
	bySkill := make(map[string][]SkillRate)
	for _, r := range rates {
		bySkill[r.SkillCode] = append(bySkill[r.SkillCode], r)
	}
	for code := range bySkill {
		rows := bySkill[code]
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].EffectiveFrom.Before(rows[j].EffectiveFrom)
		})
	}
	return RateTable{bySkill: bySkill}
}

// RateFor returns the applicable hourly rate for a skill as of a date.
func (t RateTable) RateFor(skillCode string, asOf time.Time) (float64, bool) {
	rows := t.bySkill[skillCode]
	found := false
	rate := 0.0
	for _, r := range rows {
		if r.EffectiveFrom.After(asOf) {
			break
		}
		rate = r.RatePerHour
		found = true
	}
	return rate, found
}

// SkillStandard is the standard time budgeted for a skill on a work item.
type SkillStandard struct {
	SkillCode       string  `bson:"skillCode" json:"skillCode"`
	StandardMinutes float64 `bson:"standardMinutes" json:"standardMinutes"`
}

// WorkerMinutes is the time one worker reported against a work item today.
type WorkerMinutes struct {
	Worker  WorkerRef `bson:"worker" json:"worker"`
	Minutes float64   `bson:"minutes" json:"minutes"`
}

// WorkerShare is one worker's allocated amount.
type WorkerShare struct {
	Worker WorkerRef `bson:"worker" json:"worker"`
	Amount float64   `bson:"amount" json:"amount"`
}

// CostAllocation is a distributed amount. Shares sum exactly to TotalAmount
// at two decimal places; the rounding residual is assigned by the largest
// remainder, ties going to the earlier entry.
type CostAllocation struct {
	TotalAmount float64       `json:"totalAmount"`
	Shares      []WorkerShare `json:"shares"`
}

// PieceRateTotal computes a standard work's piece-rate value: the sum over
// its skill standards of rate-per-hour times standard hours, using the rate
// applicable on the work date. Skills with no applicable rate contribute
// nothing and are reported as findings.
func PieceRateTotal(standards []SkillStandard, rates RateTable, workDate time.Time) (float64, []Finding) {
	var findings []Finding
	total := 0.0
	for _, std := range standards {
		rate, ok := rates.RateFor(std.SkillCode, workDate)
		if !ok {
			findings = append(findings, Finding{
				Code:      FindingRateNotFound,
				Message:   fmt.Sprintf("no rate effective on %s for skill %s; skill skipped", workDate.Format("2006-01-02"), std.SkillCode),
				SkillCode: std.SkillCode,
			})
			continue
		}
		total += rate * std.StandardMinutes / 60.0
	}
	return round2(total), findings
}

// DistributeStandardWork splits a standard work's piece-rate value across the
// workers who reported time against it, proportionally to minutes worked
// today. Deviation entries carry no weight and receive a zero share.
func DistributeStandardWork(standards []SkillStandard, rates RateTable, workDate time.Time, workers []WorkerMinutes) (CostAllocation, []Finding) {
	total, findings := PieceRateTotal(standards, rates, workDate)

	weights := make([]float64, len(workers))
	for i, w := range workers {
		if w.Worker.IsDeviation() {
			continue
		}
		weights[i] = w.Minutes
	}

	cents := splitProportional(toCents(total), weights)

	shares := make([]WorkerShare, len(workers))
	for i, w := range workers {
		shares[i] = WorkerShare{Worker: w.Worker, Amount: fromCents(cents[i])}
	}

	return CostAllocation{TotalAmount: total, Shares: shares}, findings
}

// SalaryTable maps worker IDs to monthly salaries.
type SalaryTable map[string]float64

// NonStandardEntry is one worker's reported hours on a non-standard work.
type NonStandardEntry struct {
	Worker           WorkerRef `bson:"worker" json:"worker"`
	HoursWorkedToday float64   `bson:"hoursWorkedToday" json:"hoursWorkedToday"`
}

// WorkingDaysInMonth counts the days of a month that are neither weekends
// nor configured holidays.
func WorkingDaysInMonth(year int, month time.Month, holidays []time.Time) int {
	c := cal.NewBusinessCalendar()
	for _, h := range holidays {
		if h.Year() != year || h.Month() != month {
			continue
		}
		c.AddHoliday(&cal.Holiday{
			Name:      "configured holiday",
			Type:      cal.ObservancePublic,
			Month:     h.Month(),
			Day:       h.Day(),
			StartYear: h.Year(),
			EndYear:   h.Year(),
			Func:      cal.CalcDayOfMonth,
		})
	}

	days := 0
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if c.IsWorkday(d) {
			days++
		}
	}
	return days
}

// DistributeNonStandardWork costs each worker independently from their
// monthly salary: salary divided by the month's working days and the working
// hours per day, uplifted, times hours worked today. Workers with no salary
// row are skipped with a finding; deviation entries receive zero.
func DistributeNonStandardWork(year int, month time.Month, entries []NonStandardEntry, salaries SalaryTable, holidays []time.Time) (CostAllocation, []Finding) {
	workingDays := WorkingDaysInMonth(year, month, holidays)

	var findings []Finding
	shares := make([]WorkerShare, len(entries))
	total := 0.0

	for i, entry := range entries {
		shares[i] = WorkerShare{Worker: entry.Worker}

		if entry.Worker.IsDeviation() {
			continue
		}

		salary, ok := salaries[entry.Worker.ID]
		if !ok {
			findings = append(findings, Finding{
				Code:     FindingSalaryNotFound,
				Message:  fmt.Sprintf("no salary record for worker %s; worker skipped", entry.Worker.ID),
				WorkerID: entry.Worker.ID,
			})
			continue
		}
		if workingDays == 0 {
			continue
		}

		hourlyRate := salary / float64(workingDays) / hoursPerWorkingDay
		amount := round2(hourlyRate * nonStandardUplift * entry.HoursWorkedToday)
		shares[i].Amount = amount
		total += amount
	}

	return CostAllocation{TotalAmount: round2(total), Shares: shares}, findings
}

// LostTimeItem is one lost-time reason with its computed cost.
type LostTimeItem struct {
	ReasonCode string  `bson:"reasonCode" json:"reasonCode"`
	Payable    bool    `bson:"payable" json:"payable"`
	TotalCost  float64 `bson:"totalCost" json:"totalCost"`
}

// WorkerWeight is a caller-supplied distribution weight for one worker,
// typically their equal-hours share.
type WorkerWeight struct {
	Worker WorkerRef `bson:"worker" json:"worker"`
	Weight float64   `bson:"weight" json:"weight"`
}

// LostTimeItemAllocation retains the per-reason total next to the worker
// shares so the caller can cross-check that shares sum to the total.
type LostTimeItemAllocation struct {
	ReasonCode  string        `json:"reasonCode"`
	TotalAmount float64       `json:"totalAmount"`
	Shares      []WorkerShare `json:"shares"`
}

// DistributeLostTime splits each payable lost-time reason's cost across
// workers by the supplied weights. Non-payable reasons contribute nothing and
// are omitted from the result.
func DistributeLostTime(items []LostTimeItem, weights []WorkerWeight) []LostTimeItemAllocation {
	ws := make([]float64, len(weights))
	for i, w := range weights {
		if w.Worker.IsDeviation() {
			continue
		}
		ws[i] = w.Weight
	}

	var allocations []LostTimeItemAllocation
	for _, item := range items {
		if !item.Payable {
			continue
		}

		total := round2(item.TotalCost)
		cents := splitProportional(toCents(total), ws)

		shares := make([]WorkerShare, len(weights))
		for i, w := range weights {
			shares[i] = WorkerShare{Worker: w.Worker, Amount: fromCents(cents[i])}
		}

		allocations = append(allocations, LostTimeItemAllocation{
			ReasonCode:  item.ReasonCode,
			TotalAmount: total,
			Shares:      shares,
		})
	}
	return allocations
}

// splitProportional divides a cent total across weights so the shares sum
// exactly to the total. Each share is floored, then the residual cents are
// handed out by largest fractional remainder, earlier entries winning ties.
func splitProportional(totalCents int64, weights []float64) []int64 {
	shares := make([]int64, len(weights))

	weightSum := 0.0
	for _, w := range weights {
		if w > 0 {
			weightSum += w
		}
	}
	if weightSum <= 0 || totalCents <= 0 {
		return shares
	}

	type remainder struct {
		index int
		frac  float64
	}

	remainders := make([]remainder, 0, len(weights))
	var assigned int64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		exact := float64(totalCents) * w / weightSum
		floor := int64(math.Floor(exact))
		shares[i] = floor
		assigned += floor
		remainders = append(remainders, remainder{index: i, frac: exact - float64(floor)})
	}

	sort.SliceStable(remainders, func(i, j int) bool {
		return remainders[i].frac > remainders[j].frac
	})

	residual := totalCents - assigned
	for i := int64(0); i < residual && int(i) < len(remainders); i++ {
		shares[remainders[i].index]++
	}

	return shares
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
