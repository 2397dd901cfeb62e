package app

import (
	"database/sql"

	"go-employee/internal/auth"
	"go-employee/internal/division"
	"go-employee/internal/employee"
	"go-employee/internal/eventbus"
	"go-employee/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	bus *eventbus.Bus,
	logger *zap.Logger,
) {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	divisionRepo := division.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)

	// --- Services ---
	authService := auth.NewService(authRepo)
	divisionService := division.NewService(divisionRepo, rdb, logger)
	employeeService := employee.NewService(db, employeeRepo, bus, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	divisionHandler := division.NewHandler(divisionService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)

	// --- Routes ---
	api := router.Group("/api")
	api.Use(middleware.RequestID())
	{
		auth.RegisterRoutes(api, authHandler)
		division.RegisterRoutes(api, divisionHandler)
		employee.RegisterRoutes(api, employeeHandler, logger)
	}
}
