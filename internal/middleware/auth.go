package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"clubportal/internal/models"
	"clubportal/internal/services"
)

const identityKey = "identity"

// SessionMiddleware разрешает личность участника по токену из запроса и
// кладёт её в контекст. Запрос никогда не отклоняется: отсутствующий или
// невалидный токен — это обычный аноним, сайт должен работать и без входа.
// Единственное исключение — отказ хранилища, он фатален для запроса.
func SessionMiddleware(sessions services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		identity, err := sessions.Resolve(c.Request)
		if err != nil {
			log.Printf("[session][resolve] store error: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if identity != nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

// IdentityFromCtx — личность текущего участника или nil для анонима.
func IdentityFromCtx(c *gin.Context) *models.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*models.Identity)
	return identity
}

// RequireMember пускает дальше только вошедших участников с активным
// аккаунтом.
func RequireMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := IdentityFromCtx(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !identity.Active() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}
		c.Next()
	}
}
