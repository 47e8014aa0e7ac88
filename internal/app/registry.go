package app

import (
	"database/sql"

	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/employee"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/intel"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/messaging/kafka"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/recommendation"

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
	rules *intel.Ruleset,
) error {
	logger := zap.L()

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	recommendationRepo := recommendation.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	employeeService := employee.NewService(employeeRepo, rules, rdb)
	recommendationService := recommendation.NewServiceWithOutbox(
		db,
		recommendationRepo,
		employeeRepo,
		outboxRepo,
		rdb,
	)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	recommendationHandler := recommendation.NewHandler(recommendationService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, logger)
		recommendation.RegisterRoutes(api, recommendationHandler, logger)
	}

	return nil
}
