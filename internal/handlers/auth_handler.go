package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"clubportal/internal/middleware"
	"clubportal/internal/models"
	"clubportal/internal/services"
)

type AuthHandler struct {
	login    services.LoginService
	members  services.MemberService
	sessionTTL time.Duration // срок cookie = сроку токена

	cookieSecure bool
}

func NewAuthHandler(login services.LoginService, members services.MemberService, sessionTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		login:        login,
		members:      members,
		sessionTTL:   sessionTTL,
		cookieSecure: cookieSecure,
	}
}

// @Summary      Request a sign-in code
// @Description  Emails a one-time code and returns the verification session id
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.RequestCodeRequest  true  "Member email"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Router       /auth/request-code [post]
func (h *AuthHandler) RequestCode(c *gin.Context) {
	var req models.RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	sessionID, err := h.login.RequestCode(email)
	if err != nil {
		if errors.Is(err, services.ErrResendThrottled) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try later"})
			return
		}
		log.Printf("[auth][request-code] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Code sent",
		"session_id": sessionID,
	})
}

// @Summary      Verify a sign-in code
// @Description  Exchanges a verification session id and code for a session token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.VerifyCodeRequest  true  "Session id and code"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Router       /auth/verify [post]
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req models.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sessionID := strings.TrimSpace(req.SessionID)
	code := strings.TrimSpace(req.Code)
	if sessionID == "" || code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id and code are required"})
		return
	}

	v, token, err := h.login.Verify(sessionID, code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVerificationNotFound),
			errors.Is(err, services.ErrAttemptThrottled),
			errors.Is(err, services.ErrCodeExpired),
			errors.Is(err, services.ErrCodeMismatch):
			// наружу все четыре случая неразличимы, детали только в логах —
			// иначе ответ подсказывает перебору, существует ли запись
			log.Printf("[auth][verify] rejected session_id=%s: %v", sessionID, err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired code, try again"})
			return
		default:
			log.Printf("[auth][verify] failed session_id=%s: %v", sessionID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
			return
		}
	}

	// Гасим запись отдельным шагом: из двух одновременных подтверждений
	// токен получает только то, чьё удаление реально прошло.
	if err := h.login.Consume(sessionID); err != nil {
		log.Printf("[auth][verify] consume lost session_id=%s: %v", sessionID, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired code, try again"})
		return
	}

	maxAge := int(h.sessionTTL / time.Second)
	c.SetCookie(services.SessionCookieName, token, maxAge, "/", "", h.cookieSecure, true)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Signed in",
		"member_id": v.MemberID,
		"token":     token,
	})
}

// @Summary      Sign out
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// серверного отзыва нет — просто сносим cookie, клиент забывает токен
	c.SetCookie(services.SessionCookieName, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// @Summary      Current member
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  models.Member
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity := middleware.IdentityFromCtx(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	member, err := h.members.GetMemberByID(identity.MemberID)
	if err != nil || member == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, member)
}
