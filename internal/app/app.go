package app

import (
	"database/sql"
	"fmt"
	"log"

	"clubportal/internal/config"
	"clubportal/internal/handlers"
	"clubportal/internal/repositories"
	"clubportal/internal/routes"
	"clubportal/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "clubportal/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to DB: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close DB: %v", err)
		}
	}()

	// === Repos ===
	memberRepo := repositories.NewMemberRepository(db)
	verifRepo := repositories.NewLoginVerificationRepository(db)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	// слишком короткий ключ подписи — ошибка конфигурации, падаем сразу
	sessionService, err := services.NewSessionService(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL(), memberRepo)
	if err != nil {
		log.Fatal("Invalid auth config: ", err)
	}

	memberService := services.NewMemberService(memberRepo, emailService)
	loginService := services.NewLoginService(
		verifRepo,
		memberRepo,
		emailService,
		sessionService,
		services.CodeGenerator{Length: cfg.Auth.CodeLength},
		cfg.Auth.CodeTTL(),
		cfg.Auth.AttemptCooldown(),
	)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(loginService, memberService, cfg.Auth.SessionTTL(), cfg.Auth.CookieSecure)
	memberHandler := handlers.NewMemberHandler(memberService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, sessionService, authHandler, memberHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
