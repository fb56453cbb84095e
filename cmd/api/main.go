package main

import (
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smilemore/clinic-scheduler/internal/cache"
	"github.com/smilemore/clinic-scheduler/internal/config"
	dbpkg "github.com/smilemore/clinic-scheduler/internal/db"
	"github.com/smilemore/clinic-scheduler/internal/logging"
	"github.com/smilemore/clinic-scheduler/internal/notify"
	"github.com/smilemore/clinic-scheduler/internal/routes"
	"github.com/smilemore/clinic-scheduler/internal/sse"
	"github.com/smilemore/clinic-scheduler/internal/timezone"
)

func main() {

	if err := logging.Init(os.Getenv("DEBUG") == "true"); err != nil {
		panic(err)
	}
	defer logging.Sync()

	cfg := config.Load()

	if !timezone.IsValid(cfg.ClinicTimezone) {
		logging.Log.Fatal("invalid clinic timezone", zap.String("tz", cfg.ClinicTimezone))
	}
	loc := timezone.Location(cfg.ClinicTimezone)

	db := dbpkg.NewDB(cfg)

	calendarCache := cache.New(cfg.RedisAddr, cfg.RedisPassword)

	sender := notify.NewWhatsappSender(cfg.WaGatewayURL)
	reminder := notify.NewAppointmentReminder(db, sender, loc)
	reminder.StartReminderCron()

	broadcaster := sse.NewBroadcaster()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/events/stream"})))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, calendarCache, broadcaster, loc)

	logging.Log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logging.Log.Fatal("failed to start server", zap.Error(err))
	}
}
