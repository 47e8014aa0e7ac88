package app

import (
	"log"
	"os"

	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/intel"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/middleware"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/shared/connection"

	"github.com/gin-gonic/gin"
)

const defaultRulesPath = "config/classification_rules.yaml"

func BuildApp(router *gin.Engine) error {
	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	log.Println("✅ Database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	log.Println("✅ Redis connection established")

	// 2. Aturan klasifikasi bisa dioverride tanpa rebuild
	rulesPath := os.Getenv("CLASSIFIER_RULES_PATH")
	if rulesPath == "" {
		rulesPath = defaultRulesPath
	}
	rules, err := intel.LoadRuleset(rulesPath)
	if err != nil {
		return err
	}
	log.Println("✅ Classification ruleset loaded")

	router.Use(middleware.RequestID())

	// 3. Register Modules & Routes
	return registerModules(router, sqlDB, gormDB, redisClient, rules)
}
