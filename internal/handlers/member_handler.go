package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"clubportal/internal/models"
	"clubportal/internal/services"
)

type MemberHandler struct {
	service services.MemberService
}

type createMemberRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Name   string `json:"name" binding:"required"`
	RoleID int    `json:"role_id"`
}

func NewMemberHandler(service services.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

// @Summary      Create a member
// @Tags         Members
// @Accept       json
// @Produce      json
// @Param        member  body      createMemberRequest  true  "New member"
// @Success      201     {object}  models.Member
// @Failure      400     {object}  map[string]string
// @Router       /members [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req createMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m := &models.Member{Email: req.Email, Name: req.Name, RoleID: req.RoleID}
	if err := h.service.CreateMember(m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, m)
}

// @Summary      List members
// @Tags         Members
// @Produce      json
// @Success      200  {array}  models.Member
// @Router       /members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	limit, offset := parseLimitOffset(c)
	members, err := h.service.ListMembers(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list members"})
		return
	}
	c.JSON(http.StatusOK, members)
}

// @Summary      Get a member
// @Tags         Members
// @Produce      json
// @Param        id   path      int  true  "Member ID"
// @Success      200  {object}  models.Member
// @Failure      404  {object}  map[string]string
// @Router       /members/{id} [get]
func (h *MemberHandler) GetMemberByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	member, err := h.service.GetMemberByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load member"})
		return
	}
	if member == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
		return
	}
	c.JSON(http.StatusOK, member)
}
