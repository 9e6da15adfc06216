package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/csxl/coworking-api/internal/config"
	"github.com/csxl/coworking-api/internal/database"
	"github.com/csxl/coworking-api/internal/handler"
	"github.com/csxl/coworking-api/internal/queue"
	"github.com/csxl/coworking-api/internal/repository"
	"github.com/csxl/coworking-api/internal/router"
	"github.com/csxl/coworking-api/internal/service"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	seatRepo := repository.NewSeatRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	userRepo := repository.NewUserRepo(db)
	hoursRepo := repository.NewOperatingHoursRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	policy := service.NewPolicy(config.LoadPolicyConfig())
	perm := service.NewRolePermission()
	publisher := queue.NewPublisher()

	hoursSvc := service.NewOperatingHoursService(hoursRepo, perm)
	seatSvc := service.NewSeatService(seatRepo)
	reservationSvc := service.NewReservationService(
		reservationRepo, seatRepo, roomRepo, userRepo, hoursSvc, policy, perm, publisher,
	)

	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Handlers{
		Coworking:      handler.NewCoworkingHandler(reservationSvc, seatSvc, userRepo),
		Ambassador:     handler.NewAmbassadorHandler(reservationSvc, userRepo),
		OperatingHours: handler.NewOperatingHoursHandler(hoursSvc, userRepo),
	}, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
