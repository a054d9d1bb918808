package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/navalhaprime/barbershop-api/internal/config"
	dbpkg "github.com/navalhaprime/barbershop-api/internal/db"
	"github.com/navalhaprime/barbershop-api/internal/jobs"
	"github.com/navalhaprime/barbershop-api/internal/logging"
	"github.com/navalhaprime/barbershop-api/internal/media"
	"github.com/navalhaprime/barbershop-api/internal/notify"
	"github.com/navalhaprime/barbershop-api/internal/routes"
	"github.com/navalhaprime/barbershop-api/internal/store"
)

func main() {

	_ = godotenv.Load()

	logging.Init()
	defer logging.Sync()
	log := logging.L()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	snaps, err := store.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("redis connection failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	if snaps == nil {
		log.Info("snapshot cache disabled, no REDIS_ADDR")
	}

	notifier := notify.New(
		cfg.TwilioAccountSID,
		cfg.TwilioAuthToken,
		cfg.TwilioWhatsAppFrom,
		log,
	)

	uploader := media.New(
		cfg.S3Bucket,
		cfg.S3Region,
		cfg.S3AccessKey,
		cfg.S3SecretKey,
		cfg.S3PublicBaseURL,
	)

	r := gin.Default()
	routes.RegisterRoutes(r, db, cfg, snaps, notifier, uploader, log)

	scheduler := jobs.NewScheduler(db, notifier, cfg.Timezone, log)
	scheduler.Start()
	defer scheduler.Stop()

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
