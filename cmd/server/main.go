package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/guilhermereis1k/oscar-cinema/internal/config"
	"github.com/guilhermereis1k/oscar-cinema/internal/database"
	"github.com/guilhermereis1k/oscar-cinema/internal/handler"
	"github.com/guilhermereis1k/oscar-cinema/internal/queue"
	"github.com/guilhermereis1k/oscar-cinema/internal/repository"
	"github.com/guilhermereis1k/oscar-cinema/internal/router"
	"github.com/guilhermereis1k/oscar-cinema/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}

	movieRepo := repository.NewMovieRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	seatTypeRepo := repository.NewSeatTypeRepo(db)
	exhibitionRepo := repository.NewExhibitionTypeRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	ticketRepo := repository.NewTicketRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	sessionSvc := service.NewSessionService(sessionRepo)
	ticketSvc := service.NewTicketService(sessionRepo, ticketRepo, exhibitionRepo, seatTypeRepo, queue.PublishTicketIssued)

	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket consumer stopped: %v", err)
		}
	}()

	e := router.New(cfg, rdb, router.Handlers{
		Health:  handler.NewHealthHandler(db),
		Auth:    handler.NewAuthHandler(userRepo, tokenRepo, cfg),
		Movies:  handler.NewMovieHandler(movieRepo),
		Rooms:   handler.NewRoomHandler(roomRepo),
		Catalog: handler.NewCatalogHandler(seatTypeRepo, exhibitionRepo),
		Session: handler.NewSessionHandler(sessionSvc),
		Ticket:  handler.NewTicketHandler(ticketSvc),
	})

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
