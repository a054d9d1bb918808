package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/navalhaprime/barbershop-api/internal/audit"
	"github.com/navalhaprime/barbershop-api/internal/domain/finance"
	"github.com/navalhaprime/barbershop-api/internal/domain/team"
	"github.com/navalhaprime/barbershop-api/internal/middleware"
	"github.com/navalhaprime/barbershop-api/internal/models"
	"github.com/navalhaprime/barbershop-api/internal/store"
	"github.com/navalhaprime/barbershop-api/internal/validators"
)

type TeamHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	snaps *store.Store
}

func NewTeamHandler(db *gorm.DB, auditDisp *audit.Dispatcher, snaps *store.Store) *TeamHandler {
	return &TeamHandler{db: db, audit: auditDisp, snaps: snaps}
}

// --------- Requests ---------

type CreateTeamMemberRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Role           string   `json:"role" binding:"required"`
	CommissionRate *float64 `json:"commission_rate,omitempty"`
	Password       string   `json:"password"`
	PhotoURL       string   `json:"photo_url"`
}

type UpdateTeamMemberRequest struct {
	Name           *string  `json:"name,omitempty"`
	Email          *string  `json:"email,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	Role           *string  `json:"role,omitempty"`
	CommissionRate *float64 `json:"commission_rate,omitempty"`
	Password       *string  `json:"password,omitempty"`
	PhotoURL       *string  `json:"photo_url,omitempty"`
}

// --------- Handlers ---------

func (h *TeamHandler) List(c *gin.Context) {
	role := strings.TrimSpace(c.Query("role"))

	q := h.db.Session(&gorm.Session{})
	if role != "" {
		if !team.Role(role).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_role"})
			return
		}
		q = q.Where("role = ?", role)
	}

	var members []models.TeamMember
	if err := q.Order("name ASC").Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_team"})
		return
	}

	c.JSON(http.StatusOK, members)
}

func (h *TeamHandler) Create(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	role := team.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_role"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if role.CanLogin() {
		if email == "" || !validators.IsEmailDomainValid(email) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_email",
				"message": "E-mail inválido ou domínio inexistente.",
			})
			return
		}
		if req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "password_required",
				"message": "Senha obrigatória para perfis com acesso ao painel.",
			})
			return
		}
	}

	phone := validators.NormalizePhone(req.Phone)
	if phone != "" && !validators.IsPhoneValid(phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_phone"})
		return
	}

	member := models.TeamMember{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Phone:    phone,
		Role:     string(role),
		PhotoURL: req.PhotoURL,
	}

	if role.Commissioned() {
		member.CommissionRate = finance.DefaultCommissionRate
		if req.CommissionRate != nil {
			if *req.CommissionRate < 0 || *req.CommissionRate > 100 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_commission_rate"})
				return
			}
			member.CommissionRate = *req.CommissionRate
		}
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
			return
		}
		member.PasswordHash = string(hash)
	}

	if err := h.db.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_member"})
		return
	}

	h.snaps.Touch(c.Request.Context(), store.Team)
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "team_member_created",
		Entity:   "team_member",
		EntityID: &member.ID,
	})

	c.JSON(http.StatusCreated, member)
}

func (h *TeamHandler) Update(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var member models.TeamMember
	if err := h.db.First(&member, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "member_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_member"})
		return
	}

	var req UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		member.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != "" && !validators.IsEmailDomainValid(email) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_email",
				"message": "E-mail inválido ou domínio inexistente.",
			})
			return
		}
		member.Email = email
	}
	if req.Phone != nil {
		phone := validators.NormalizePhone(*req.Phone)
		if phone != "" && !validators.IsPhoneValid(phone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_phone"})
			return
		}
		member.Phone = phone
	}
	if req.Role != nil {
		role := team.Role(strings.ToLower(strings.TrimSpace(*req.Role)))
		if !role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_role"})
			return
		}
		member.Role = string(role)
		if !role.Commissioned() {
			member.CommissionRate = 0
		}
	}
	if req.CommissionRate != nil {
		if !team.Role(member.Role).Commissioned() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "commission_not_applicable",
				"message": "Comissão só se aplica a barbeiros.",
			})
			return
		}
		if *req.CommissionRate < 0 || *req.CommissionRate > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_commission_rate"})
			return
		}
		member.CommissionRate = *req.CommissionRate
	}
	if req.PhotoURL != nil {
		member.PhotoURL = *req.PhotoURL
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
			return
		}
		member.PasswordHash = string(hash)
	}

	if err := h.db.Save(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_member"})
		return
	}

	h.snaps.Touch(c.Request.Context(), store.Team)
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "team_member_updated",
		Entity:   "team_member",
		EntityID: &member.ID,
	})

	c.JSON(http.StatusOK, member)
}

func (h *TeamHandler) Delete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := paramID(c)
	if !ok {
		return
	}

	if id == actorID {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "cannot_delete_self",
			"message": "Você não pode remover o próprio usuário.",
		})
		return
	}

	res := h.db.Delete(&models.TeamMember{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_member"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "member_not_found"})
		return
	}

	h.snaps.Touch(c.Request.Context(), store.Team)
	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "team_member_deleted",
		Entity:   "team_member",
		EntityID: &id,
	})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
