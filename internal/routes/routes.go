package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clubportal/internal/authz"
	"clubportal/internal/handlers"
	"clubportal/internal/middleware"
	"clubportal/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	sessions services.SessionService,
	authHandler *handlers.AuthHandler,
	memberHandler *handlers.MemberHandler,
) *gin.Engine {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Личность разрешается на каждом запросе; аноним — нормальное
	// состояние, блокируют только guard-ы ниже.
	r.Use(middleware.SessionMiddleware(sessions))

	// ---- public
	r.POST("/auth/request-code", authHandler.RequestCode)
	r.POST("/auth/verify", authHandler.VerifyCode)
	r.POST("/auth/logout", authHandler.Logout)

	// ---- authenticated
	r.GET("/me", middleware.RequireMember(), authHandler.Me)

	// MEMBERS (Organizer/Admin)
	members := r.Group("/members", middleware.RequireMember(), middleware.RequireRoles(authz.RoleOrganizer, authz.RoleAdmin))
	{
		members.POST("/", memberHandler.CreateMember)
		members.GET("/", memberHandler.ListMembers)
		members.GET("/:id", memberHandler.GetMemberByID)
	}

	return r
}
