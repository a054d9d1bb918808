package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalhaprime/barbershop-api/internal/domain/schedule"
	"github.com/navalhaprime/barbershop-api/internal/domain/team"
	"github.com/navalhaprime/barbershop-api/internal/dto"
	"github.com/navalhaprime/barbershop-api/internal/models"
	"github.com/navalhaprime/barbershop-api/internal/store"
	ucappointment "github.com/navalhaprime/barbershop-api/internal/usecase/appointment"
	"github.com/navalhaprime/barbershop-api/internal/validators"
)

// PublicHandler serves the unauthenticated booking surface: catalog,
// barber list, slot grid and the booking form itself.
type PublicHandler struct {
	db    *gorm.DB
	snaps *store.Store

	createUC *ucappointment.CreateAppointment
	slotsUC  *ucappointment.GetDaySlots
	checkUC  *ucappointment.CheckSlot
}

func NewPublicHandler(
	db *gorm.DB,
	snaps *store.Store,
	createUC *ucappointment.CreateAppointment,
	slotsUC *ucappointment.GetDaySlots,
	checkUC *ucappointment.CheckSlot,
) *PublicHandler {
	return &PublicHandler{
		db:       db,
		snaps:    snaps,
		createUC: createUC,
		slotsUC:  slotsUC,
		checkUC:  checkUC,
	}
}

// --------- Requests ---------

type PublicBookingRequest struct {
	ClientName string `json:"client_name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	ServiceIDs string `json:"service_ids" binding:"required"`
	BarberID   *uint  `json:"barber_id"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Notes      string `json:"notes"`
}

// --------- Catalog ---------

// Services lists the active catalog. Reads go through the Redis
// snapshot when warm, straight to Postgres otherwise.
func (h *PublicHandler) Services(c *gin.Context) {
	if cached := h.snaps.Snapshot(c.Request.Context(), store.Services); cached != nil {
		c.Data(http.StatusOK, "application/json", cached)
		return
	}

	var services []models.Service
	if err := h.db.
		Where("active = ?", true).
		Order("id ASC").
		Find(&services).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	h.snaps.PutSnapshot(c.Request.Context(), store.Services, services)
	c.JSON(http.StatusOK, services)
}

func (h *PublicHandler) Barbers(c *gin.Context) {
	var barbers []models.TeamMember
	if err := h.db.
		Select("id", "name", "photo_url").
		Where("role = ?", string(team.RoleBarber)).
		Order("name ASC").
		Find(&barbers).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_barbers"})
		return
	}

	out := make([]gin.H, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, gin.H{
			"id":        b.ID,
			"name":      b.Name,
			"photo_url": b.PhotoURL,
		})
	}

	c.JSON(http.StatusOK, out)
}

// --------- Availability ---------

func (h *PublicHandler) DaySlots(c *gin.Context) {
	date := c.Query("date")
	serviceIDs := c.Query("service_ids")
	if date == "" || serviceIDs == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_date_or_services"})
		return
	}

	barberID, ok := optionalBarberID(c)
	if !ok {
		return
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), date, serviceIDs, barberID)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}

func (h *PublicHandler) CheckSlot(c *gin.Context) {
	date := c.Query("date")
	hhmm := c.Query("time")
	serviceIDs := c.Query("service_ids")
	if date == "" || hhmm == "" || serviceIDs == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_slot_params"})
		return
	}

	barberID, ok := optionalBarberID(c)
	if !ok {
		return
	}

	available, err := h.checkUC.Execute(c.Request.Context(), schedule.SlotQuery{
		Date:       date,
		Time:       hhmm,
		ServiceIDs: serviceIDs,
		BarberID:   barberID,
	})
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}

// --------- Booking ---------

func (h *PublicHandler) Book(c *gin.Context) {
	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		ClientName:     req.ClientName,
		Phone:          validators.NormalizePhone(req.Phone),
		ServiceIDs:     req.ServiceIDs,
		BarberID:       req.BarberID,
		Date:           req.Date,
		Time:           req.Time,
		Notes:          req.Notes,
		EnforceAdvance: true,
	})
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"reference":   ap.Reference,
		"appointment": dto.FromAppointment(ap),
	})
}

// Track looks a booking up by its public reference so clients can
// check status without logging in.
func (h *PublicHandler) Track(c *gin.Context) {
	ref := strings.ToUpper(strings.TrimSpace(c.Param("reference")))
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_reference"})
		return
	}

	var ap models.Appointment
	if err := h.db.Where("reference = ?", ref).First(&ap).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference":    ap.Reference,
		"service_name": ap.ServiceName,
		"barber_name":  ap.BarberName,
		"date":         ap.Date,
		"time":         ap.Time,
		"status":       ap.Status,
	})
}

// --------- Helpers ---------

func optionalBarberID(c *gin.Context) (*uint, bool) {
	raw := c.Query("barber_id")
	if raw == "" {
		return nil, true
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_barber_id"})
		return nil, false
	}

	v := uint(id)
	return &v, true
}
