package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalhaprime/barbershop-api/internal/audit"
	"github.com/navalhaprime/barbershop-api/internal/domain/schedule"
	"github.com/navalhaprime/barbershop-api/internal/middleware"
	"github.com/navalhaprime/barbershop-api/internal/models"
)

type BusinessHoursHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBusinessHoursHandler(db *gorm.DB, auditDisp *audit.Dispatcher) *BusinessHoursHandler {
	return &BusinessHoursHandler{db: db, audit: auditDisp}
}

// --------- Requests ---------

type BusinessHoursEntry struct {
	Weekday    int    `json:"weekday"`
	OpenTime   string `json:"open_time"`
	CloseTime  string `json:"close_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
	Active     bool   `json:"active"`
}

type UpdateBusinessHoursRequest struct {
	Entries []BusinessHoursEntry `json:"entries" binding:"required"`
}

func (e *BusinessHoursEntry) valid() bool {
	if e.Weekday < 0 || e.Weekday > 6 {
		return false
	}
	if !e.Active {
		return true
	}

	open, okOpen := schedule.ClockMinutes(e.OpenTime)
	closeAt, okClose := schedule.ClockMinutes(e.CloseTime)
	if !okOpen || !okClose || open >= closeAt {
		return false
	}

	if e.LunchStart != "" || e.LunchEnd != "" {
		ls, okLS := schedule.ClockMinutes(e.LunchStart)
		le, okLE := schedule.ClockMinutes(e.LunchEnd)
		if !okLS || !okLE || ls >= le || ls < open || le > closeAt {
			return false
		}
	}

	return true
}

// --------- Handlers ---------

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	var hours []models.BusinessHours
	if err := h.db.Order("weekday ASC").Find(&hours).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update replaces the whole week in one transaction. Partial edits are
// not worth the merge rules, the UI always sends all seven days.
func (h *BusinessHoursHandler) Update(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateBusinessHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if len(req.Entries) != 7 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_week",
			"message": "Informe os sete dias da semana.",
		})
		return
	}

	seen := map[int]bool{}
	for i := range req.Entries {
		e := &req.Entries[i]
		if !e.valid() || seen[e.Weekday] {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_hours",
				"message": "Horário de funcionamento inválido.",
			})
			return
		}
		seen[e.Weekday] = true
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.BusinessHours{}).Error; err != nil {
			return err
		}

		for _, e := range req.Entries {
			row := models.BusinessHours{
				Weekday:    e.Weekday,
				OpenTime:   e.OpenTime,
				CloseTime:  e.CloseTime,
				LunchStart: e.LunchStart,
				LunchEnd:   e.LunchEnd,
				Active:     e.Active,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_hours"})
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: &actorID,
		Action: "business_hours_updated",
		Entity: "business_hours",
	})

	var hours []models.BusinessHours
	if err := h.db.Order("weekday ASC").Find(&hours).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}
