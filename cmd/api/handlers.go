package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mes-platform/labor-service/pkg/api"
	"github.com/mes-platform/labor-service/pkg/errors"
	"github.com/mes-platform/labor-service/pkg/logging"
	"github.com/mes-platform/labor-service/pkg/middleware"

	"github.com/mes-platform/labor-service/internal/application"
)

const dateLayout = "2006-01-02"

func respond(c *gin.Context, responder *middleware.ErrorResponder, err error) bool {
	if err == nil {
		return false
	}
	if appErr, ok := err.(*errors.AppError); ok {
		responder.RespondWithAppError(appErr)
	} else {
		responder.RespondInternalError(err)
	}
	return true
}

func parseDate(c *gin.Context, responder *middleware.ErrorResponder, value string) (time.Time, bool) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		responder.RespondBadRequest("date must be formatted YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

type assignmentRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	From       string `json:"from" binding:"required,timeofday"`
	To         string `json:"to" binding:"required,timeofday"`
}

type createPlanRequest struct {
	PlanID      string              `json:"planId" binding:"required"`
	WorkOrderID string              `json:"workOrderId" binding:"required"`
	WorkCode    string              `json:"workCode" binding:"required"`
	StageCode   string              `json:"stageCode" binding:"required"`
	ShiftCode   string              `json:"shiftCode" binding:"required"`
	PlanDate    string              `json:"planDate" binding:"required"`
	Assignments []assignmentRequest `json:"assignments" binding:"dive"`
}

func createPlanHandler(service *application.PlanningApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req createPlanRequest
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		planDate, ok := parseDate(c, responder, req.PlanDate)
		if !ok {
			return
		}

		cmd := application.CreatePlanCommand{
			PlanID:      req.PlanID,
			WorkOrderID: req.WorkOrderID,
			WorkCode:    req.WorkCode,
			StageCode:   req.StageCode,
			ShiftCode:   req.ShiftCode,
			PlanDate:    planDate,
		}
		for _, a := range req.Assignments {
			cmd.Assignments = append(cmd.Assignments, application.AssignmentInput{
				EmployeeID: a.EmployeeID,
				From:       a.From,
				To:         a.To,
			})
		}

		plan, err := service.CreatePlan(c.Request.Context(), cmd)
		if respond(c, responder, err) {
			return
		}

		c.JSON(http.StatusCreated, plan)
	}
}

func getPlanHandler(service *application.PlanningApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		plan, err := service.GetPlan(c.Request.Context(), application.GetPlanQuery{PlanID: c.Param("planId")})
		if respond(c, responder, err) {
			return
		}

		c.JSON(http.StatusOK, plan)
	}
}

func submitPlanHandler(service *application.PlanningApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			SubmittedBy string `json:"submittedBy" binding:"required"`
		}
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		plan, err := service.SubmitPlan(c.Request.Context(), application.SubmitPlanCommand{
			PlanID:      c.Param("planId"),
			SubmittedBy: req.SubmittedBy,
		})
		if respond(c, responder, err) {
			return
		}

		c.JSON(http.StatusOK, plan)
	}
}

func approvePlanHandler(service *application.PlanningApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			ApprovedBy string `json:"approvedBy" binding:"required"`
		}
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		plan, err := service.ApprovePlan(c.Request.Context(), application.ApprovePlanCommand{
			PlanID:     c.Param("planId"),
			ApprovedBy: req.ApprovedBy,
		})
		if respond(c, responder, err) {
			return
		}

		c.JSON(http.StatusOK, plan)
	}
}

func rejectPlanHandler(service *application.PlanningApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			RejectedBy string `json:"rejectedBy" binding:"required"`
			Reason     string `json:"reason" binding:"required"`
		}
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		plan, err := service.RejectPlan(c.Request.Context(), application.RejectPlanCommand{
			PlanID:     c.Param("planId"),
			RejectedBy: req.RejectedBy,
			Reason:     req.Reason,
		})
		if respond(c, responder, err) {
			return
		}

		c.JSON(http.StatusOK, plan)
	}
}

func cancelPlanHandler(service *application.PlanningApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			CancelledBy string `json:"cancelledBy" binding:"required"`
		}
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		plan, err := service.CancelPlan(c.Request.Context(), application.CancelPlanCommand{
			PlanID:      c.Param("planId"),
			CancelledBy: req.CancelledBy,
		})
		if respond(c, responder, err) {
			return
		}

		c.JSON(http.StatusOK, plan)
	}
}

func reportWorkHandler(service *application.PlanningApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			WorkerID         string  `json:"workerId"`
			Deviation        bool    `json:"deviation"`
			DeviationReason  string  `json:"deviationReason"`
			HoursWorkedToday float64 `json:"hoursWorkedToday" binding:"gte=0"`
			Completed        bool    `json:"completed"`
		}
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}
		if req.WorkerID == "" && !req.Deviation {
			responder.RespondBadRequest("either workerId or deviation must be provided")
			return
		}

		plan, err := service.ReportWork(c.Request.Context(), application.ReportWorkCommand{
			PlanID:           c.Param("planId"),
			WorkerID:         req.WorkerID,
			Deviation:        req.Deviation,
			DeviationReason:  req.DeviationReason,
			HoursWorkedToday: req.HoursWorkedToday,
			Completed:        req.Completed,
		})
		if respond(c, responder, err) {
			return
		}

		c.JSON(http.StatusOK, plan)
	}
}

type eligibilityRequest struct {
	StageCode   string `form:"stageCode" binding:"required"`
	WorkCode    string `form:"workCode" binding:"required"`
	WorkOrderID string `form:"workOrderId" binding:"required"`
	ShiftCode   string `form:"shiftCode"`
	Date        string `form:"date"`
	EmployeeID  string `form:"employeeId"`
}

func checkEligibilityHandler(service *application.PlanningApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req eligibilityRequest
		if appErr := api.BindQueryAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		query := application.CheckEligibilityQuery{
			StageCode:   req.StageCode,
			WorkCode:    req.WorkCode,
			WorkOrderID: req.WorkOrderID,
			ShiftCode:   req.ShiftCode,
			EmployeeID:  req.EmployeeID,
		}
		if req.Date != "" {
			date, ok := parseDate(c, responder, req.Date)
			if !ok {
				return
			}
			query.Date = date
		}

		verdict, err := service.CheckEligibility(c.Request.Context(), query)
		if respond(c, responder, err) {
			return
		}

		c.JSON(http.StatusOK, verdict)
	}
}

type workerStageRequest struct {
	HomeStage string `form:"homeStage" binding:"required"`
	Date      string `form:"date" binding:"required"`
}

func workerStageHandler(service *application.PlanningApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req workerStageRequest
		if appErr := api.BindQueryAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		date, ok := parseDate(c, responder, req.Date)
		if !ok {
			return
		}

		stage, err := service.GetWorkerStage(c.Request.Context(), application.WorkerStageQuery{
			EmployeeID: c.Param("employeeId"),
			HomeStage:  req.HomeStage,
			Date:       date,
		})
		if respond(c, responder, err) {
			return
		}

		c.JSON(http.StatusOK, stage)
	}
}

type validateShiftRequest struct {
	StageCode string `json:"stageCode" binding:"required"`
	ShiftCode string `json:"shiftCode" binding:"required"`
	Date      string `json:"date" binding:"required"`
}

func validateShiftPlansHandler(service *application.PlanningApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req validateShiftRequest
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		date, ok := parseDate(c, responder, req.Date)
		if !ok {
			return
		}

		report, err := service.ValidateShiftPlans(c.Request.Context(), application.ValidateShiftPlansCommand{
			StageCode: req.StageCode,
			ShiftCode: req.ShiftCode,
			Date:      date,
		})
		if respond(c, responder, err) {
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

type workerEntryRequest struct {
	WorkerID        string `json:"workerId"`
	Deviation       bool   `json:"deviation"`
	DeviationReason string `json:"deviationReason"`
}

type standardCostRequest struct {
	WorkOrderID string `json:"workOrderId" binding:"required"`
	StageCode   string `json:"stageCode" binding:"required"`
	WorkCode    string `json:"workCode" binding:"required"`
	WorkDate    string `json:"workDate" binding:"required"`
	Standards   []struct {
		SkillCode       string  `json:"skillCode" binding:"required"`
		StandardMinutes float64 `json:"standardMinutes" binding:"gte=0"`
	} `json:"standards" binding:"required,dive"`
	Workers []struct {
		workerEntryRequest
		Minutes float64 `json:"minutes" binding:"gte=0"`
	} `json:"workers" binding:"required,dive"`
}

func distributeStandardCostHandler(service *application.PlanningApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req standardCostRequest
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		workDate, ok := parseDate(c, responder, req.WorkDate)
		if !ok {
			return
		}

		cmd := application.DistributeStandardCostCommand{
			WorkOrderID: req.WorkOrderID,
			StageCode:   req.StageCode,
			WorkCode:    req.WorkCode,
			WorkDate:    workDate,
		}
		for _, std := range req.Standards {
			cmd.Standards = append(cmd.Standards, application.SkillStandardInput{
				SkillCode:       std.SkillCode,
				StandardMinutes: std.StandardMinutes,
			})
		}
		for _, w := range req.Workers {
			cmd.Workers = append(cmd.Workers, application.WorkerMinutesInput{
				WorkerID:        w.WorkerID,
				Deviation:       w.Deviation,
				DeviationReason: w.DeviationReason,
				Minutes:         w.Minutes,
			})
		}

		allocation, err := service.DistributeStandardCost(c.Request.Context(), cmd)
		if respond(c, responder, err) {
			return
		}

		c.JSON(http.StatusOK, allocation)
	}
}

type nonStandardCostRequest struct {
	WorkOrderID string `json:"workOrderId" binding:"required"`
	StageCode   string `json:"stageCode" binding:"required"`
	Year        int    `json:"year" binding:"required"`
	Month       int    `json:"month" binding:"required,min=1,max=12"`
	Entries     []struct {
		workerEntryRequest
		HoursWorkedToday float64 `json:"hoursWorkedToday" binding:"gte=0"`
	} `json:"entries" binding:"required,dive"`
}

func distributeNonStandardCostHandler(service *application.PlanningApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req nonStandardCostRequest
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		cmd := application.DistributeNonStandardCostCommand{
			WorkOrderID: req.WorkOrderID,
			StageCode:   req.StageCode,
			Year:        req.Year,
			Month:       time.Month(req.Month),
		}
		for _, e := range req.Entries {
			cmd.Entries = append(cmd.Entries, application.NonStandardEntryInput{
				WorkerID:         e.WorkerID,
				Deviation:        e.Deviation,
				DeviationReason:  e.DeviationReason,
				HoursWorkedToday: e.HoursWorkedToday,
			})
		}

		allocation, err := service.DistributeNonStandardCost(c.Request.Context(), cmd)
		if respond(c, responder, err) {
			return
		}

		c.JSON(http.StatusOK, allocation)
	}
}

type lostTimeRequest struct {
	WorkOrderID string `json:"workOrderId" binding:"required"`
	StageCode   string `json:"stageCode" binding:"required"`
	Items       []struct {
		ReasonCode string  `json:"reasonCode" binding:"required"`
		Payable    bool    `json:"payable"`
		TotalCost  float64 `json:"totalCost" binding:"gte=0"`
	} `json:"items" binding:"required,dive"`
	Weights []struct {
		WorkerID string  `json:"workerId" binding:"required"`
		Weight   float64 `json:"weight" binding:"gte=0"`
	} `json:"weights" binding:"required,dive"`
}

func distributeLostTimeHandler(service *application.PlanningApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req lostTimeRequest
		if appErr := api.BindAndValidate(c, &req); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		cmd := application.DistributeLostTimeCommand{
			WorkOrderID: req.WorkOrderID,
			StageCode:   req.StageCode,
		}
		for _, item := range req.Items {
			cmd.Items = append(cmd.Items, application.LostTimeItemInput{
				ReasonCode: item.ReasonCode,
				Payable:    item.Payable,
				TotalCost:  item.TotalCost,
			})
		}
		for _, w := range req.Weights {
			cmd.Weights = append(cmd.Weights, application.WorkerWeightInput{
				WorkerID: w.WorkerID,
				Weight:   w.Weight,
			})
		}

		allocation, err := service.DistributeLostTime(c.Request.Context(), cmd)
		if respond(c, responder, err) {
			return
		}

		c.JSON(http.StatusOK, allocation)
	}
}
