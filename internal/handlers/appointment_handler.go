package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalhaprime/barbershop-api/internal/audit"
	"github.com/navalhaprime/barbershop-api/internal/domain/schedule"
	"github.com/navalhaprime/barbershop-api/internal/dto"
	"github.com/navalhaprime/barbershop-api/internal/httperr"
	"github.com/navalhaprime/barbershop-api/internal/httpresp"
	"github.com/navalhaprime/barbershop-api/internal/middleware"
	"github.com/navalhaprime/barbershop-api/internal/models"
	"github.com/navalhaprime/barbershop-api/internal/payments"
	"github.com/navalhaprime/barbershop-api/internal/store"
	ucAppointment "github.com/navalhaprime/barbershop-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	snaps *store.Store
	pay   *payments.Links

	createUC     *ucAppointment.CreateAppointment
	rescheduleUC *ucAppointment.RescheduleAppointment
	transitionUC *ucAppointment.TransitionAppointment
}

func NewAppointmentHandler(
	db *gorm.DB,
	auditDisp *audit.Dispatcher,
	snaps *store.Store,
	pay *payments.Links,
	createUC *ucAppointment.CreateAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	transitionUC *ucAppointment.TransitionAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		audit:        auditDisp,
		snaps:        snaps,
		pay:          pay,
		createUC:     createUC,
		rescheduleUC: rescheduleUC,
		transitionUC: transitionUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName string `json:"client_name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	ServiceIDs string `json:"service_ids" binding:"required"`
	BarberID   *uint  `json:"barber_id"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
	Time       string `json:"time" binding:"required"` // HH:MM
	Notes      string `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	ClientName  *string `json:"client_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	ServiceIDs  *string `json:"service_ids,omitempty"`
	BarberID    *uint   `json:"barber_id,omitempty"`
	ClearBarber bool    `json:"clear_barber,omitempty"`
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type TransitionRequest struct {
	Status   string `json:"status" binding:"required"`
	Products []struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,min=1"`
	} `json:"products"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientName: req.ClientName,
		Phone:      req.Phone,
		ServiceIDs: req.ServiceIDs,
		BarberID:   req.BarberID,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
		ActorID:    &actorID,
	})
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(201, dto.FromAppointment(ap))
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	var aps []models.Appointment
	if err := h.db.
		Preload("Products").
		Where("date = ?", date).
		Order("time ASC").
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, dto.FromAppointments(aps))
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	prefix := strconv.Itoa(year) + "-"
	if month < 10 {
		prefix += "0"
	}
	prefix += strconv.Itoa(month)

	var aps []models.Appointment
	if err := h.db.
		Preload("Products").
		Where("date LIKE ?", prefix+"%").
		Order("date ASC, time ASC").
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"appointments": dto.FromAppointments(aps),
	})
}

// ======================================================
// RESCHEDULE / EDIT
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucAppointment.RescheduleInput{
		AppointmentID: id,
		ActorID:       actorID,
		ClientName:    req.ClientName,
		Phone:         req.Phone,
		ServiceIDs:    req.ServiceIDs,
		BarberID:      req.BarberID,
		ClearBarber:   req.ClearBarber,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(200, dto.FromAppointment(ap))
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Transition(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in := ucAppointment.TransitionInput{
		AppointmentID: id,
		ActorID:       actorID,
		To:            schedule.Status(req.Status),
	}
	for _, p := range req.Products {
		in.Products = append(in.Products, ucAppointment.ConsumedProduct{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
		})
	}

	ap, err := h.transitionUC.Execute(c.Request.Context(), in)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(200, dto.FromAppointment(ap))
}

// ======================================================
// VIEWED / BADGE
// ======================================================

func (h *AppointmentHandler) MarkViewed(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("viewed", true)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_update", "Erro ao atualizar agendamento.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	h.snaps.Touch(c.Request.Context(), store.Appointments)
	c.JSON(200, gin.H{"status": "ok"})
}

func (h *AppointmentHandler) MarkAllViewed(c *gin.Context) {
	if err := h.db.
		Model(&models.Appointment{}).
		Where("viewed = false").
		Update("viewed", true).Error; err != nil {

		httperr.Internal(c, "failed_to_update", "Erro ao atualizar agendamentos.")
		return
	}

	h.snaps.Touch(c.Request.Context(), store.Appointments)
	c.JSON(200, gin.H{"status": "ok"})
}

// Unread powers the sidebar badge: pending appointments nobody
// looked at yet.
func (h *AppointmentHandler) Unread(c *gin.Context) {
	var count int64
	if err := h.db.
		Model(&models.Appointment{}).
		Where("viewed = false AND status = ?", string(schedule.StatusPending)).
		Count(&count).Error; err != nil {

		httperr.Internal(c, "failed_to_count", "Erro ao contar notificações.")
		return
	}

	c.JSON(200, gin.H{"unread": count})
}

// ======================================================
// DELETE (hard delete, no soft-delete trail)
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var ap models.Appointment
	if err := h.db.First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	if err := h.db.Delete(&models.Appointment{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete", "Erro ao excluir agendamento.")
		return
	}

	h.snaps.Touch(c.Request.Context(), store.Appointments)

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
	})

	c.JSON(200, gin.H{"status": "deleted"})
}

// ======================================================
// PAYMENT LINK
// ======================================================

func (h *AppointmentHandler) PaymentLink(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var ap models.Appointment
	if err := h.db.First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	link, err := h.pay.CheckoutLink(c.Request.Context(), &ap)
	if err != nil {
		if httperr.IsBusiness(err, "payments_disabled") {
			httperr.BadRequest(c, "payments_disabled", "Pagamentos não configurados.")
			return
		}
		httperr.Internal(c, "payment_link_failed", "Erro ao gerar link de pagamento.")
		return
	}

	c.JSON(200, gin.H{"checkout_url": link})
}

// ======================================================
// HELPERS
// ======================================================

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func mapAppointmentError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "appointment_operation_failed", "Erro ao processar agendamento.")
		return
	}

	switch code {
	case "time_conflict":
		httperr.Conflict(c, code, "Conflito de horário.")
	case "appointment_not_found":
		httperr.NotFound(c, code, "Agendamento não encontrado.")
	case "service_not_found", "barber_not_found", "product_not_found":
		httperr.BadRequest(c, code, "Registro não encontrado.")
	case "invalid_state":
		httperr.BadRequest(c, code, "Transição de status inválida.")
	case "too_soon", "slot_in_past", "invalid_date_or_time":
		httperr.BadRequest(c, code, "Horário inválido.")
	case "insufficient_stock":
		httperr.BadRequest(c, code, "Estoque insuficiente.")
	default:
		httperr.BadRequest(c, code, "Requisição inválida.")
	}
}
