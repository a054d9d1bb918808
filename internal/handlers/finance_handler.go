package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalhaprime/barbershop-api/internal/audit"
	"github.com/navalhaprime/barbershop-api/internal/middleware"
	"github.com/navalhaprime/barbershop-api/internal/models"
	"github.com/navalhaprime/barbershop-api/internal/store"
	"github.com/navalhaprime/barbershop-api/internal/timezone"
	ucfinance "github.com/navalhaprime/barbershop-api/internal/usecase/finance"
)

type FinanceHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	snaps    *store.Store
	reportUC *ucfinance.BuildReport
	tz       string
}

func NewFinanceHandler(
	db *gorm.DB,
	auditDisp *audit.Dispatcher,
	snaps *store.Store,
	reportUC *ucfinance.BuildReport,
	tz string,
) *FinanceHandler {
	return &FinanceHandler{
		db:       db,
		audit:    auditDisp,
		snaps:    snaps,
		reportUC: reportUC,
		tz:       tz,
	}
}

// --------- Requests ---------

type ExpenseRequest struct {
	Description string  `json:"description" binding:"required"`
	Value       float64 `json:"value" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Category    string  `json:"category"`
}

type CustomRevenueRequest struct {
	Description string  `json:"description" binding:"required"`
	Value       float64 `json:"value" binding:"required"`
	Date        string  `json:"date" binding:"required"`
}

func validFinanceDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// --------- Report ---------

// Report aggregates revenue, expenses and per-barber production for
// the requested period. Defaults to the current month.
func (h *FinanceHandler) Report(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	if from == "" || to == "" {
		now := timezone.NowIn(h.tz)
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		from = first.Format("2006-01-02")
		to = first.AddDate(0, 1, -1).Format("2006-01-02")
	}

	if !validFinanceDate(from) || !validFinanceDate(to) || from > to {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_period"})
		return
	}

	report, err := h.reportUC.Execute(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_build_report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":   from,
		"to":     to,
		"report": report,
	})
}

// --------- Expenses ---------

func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	q := h.db.Session(&gorm.Session{})
	if from := c.Query("from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("date <= ?", to)
	}

	var expenses []models.Expense
	if err := q.Order("date DESC, id DESC").Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_expenses"})
		return
	}

	c.JSON(http.StatusOK, expenses)
}

func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !validFinanceDate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}
	if req.Value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_value"})
		return
	}

	expense := models.Expense{
		Description: req.Description,
		Value:       req.Value,
		Date:        req.Date,
		Category:    req.Category,
	}

	if err := h.db.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_expense"})
		return
	}

	h.snaps.Touch(c.Request.Context(), store.Expenses)
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "expense_created",
		Entity:   "expense",
		EntityID: &expense.ID,
	})

	c.JSON(http.StatusCreated, expense)
}

func (h *FinanceHandler) UpdateExpense(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !validFinanceDate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}
	if req.Value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_value"})
		return
	}

	var expense models.Expense
	if err := h.db.First(&expense, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "expense_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_expense"})
		return
	}

	expense.Description = req.Description
	expense.Value = req.Value
	expense.Date = req.Date
	expense.Category = req.Category

	if err := h.db.Save(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_expense"})
		return
	}

	h.snaps.Touch(c.Request.Context(), store.Expenses)
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "expense_updated",
		Entity:   "expense",
		EntityID: &expense.ID,
	})

	c.JSON(http.StatusOK, expense)
}

func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.Delete(&models.Expense{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_expense"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense_not_found"})
		return
	}

	h.snaps.Touch(c.Request.Context(), store.Expenses)
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "expense_deleted",
		Entity:   "expense",
		EntityID: &id,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// --------- Custom revenues ---------

func (h *FinanceHandler) ListCustomRevenues(c *gin.Context) {
	q := h.db.Session(&gorm.Session{})
	if from := c.Query("from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("date <= ?", to)
	}

	var revenues []models.CustomRevenue
	if err := q.Order("date DESC, id DESC").Find(&revenues).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_revenues"})
		return
	}

	c.JSON(http.StatusOK, revenues)
}

func (h *FinanceHandler) CreateCustomRevenue(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CustomRevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !validFinanceDate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}
	if req.Value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_value"})
		return
	}

	revenue := models.CustomRevenue{
		Description: req.Description,
		Value:       req.Value,
		Date:        req.Date,
	}

	if err := h.db.Create(&revenue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_revenue"})
		return
	}

	h.snaps.Touch(c.Request.Context(), store.CustomRevenues)
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "custom_revenue_created",
		Entity:   "custom_revenue",
		EntityID: &revenue.ID,
	})

	c.JSON(http.StatusCreated, revenue)
}

func (h *FinanceHandler) UpdateCustomRevenue(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req CustomRevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !validFinanceDate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}
	if req.Value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_value"})
		return
	}

	var revenue models.CustomRevenue
	if err := h.db.First(&revenue, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "revenue_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_revenue"})
		return
	}

	revenue.Description = req.Description
	revenue.Value = req.Value
	revenue.Date = req.Date

	if err := h.db.Save(&revenue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_revenue"})
		return
	}

	h.snaps.Touch(c.Request.Context(), store.CustomRevenues)
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "custom_revenue_updated",
		Entity:   "custom_revenue",
		EntityID: &revenue.ID,
	})

	c.JSON(http.StatusOK, revenue)
}

func (h *FinanceHandler) DeleteCustomRevenue(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.Delete(&models.CustomRevenue{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_revenue"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "revenue_not_found"})
		return
	}

	h.snaps.Touch(c.Request.Context(), store.CustomRevenues)
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "custom_revenue_deleted",
		Entity:   "custom_revenue",
		EntityID: &id,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
