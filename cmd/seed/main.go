// Loads room fixtures from a JSON file into MySQL with a bounded worker pool.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/shahedul-alam/the-hotel-server/internal/adapters/observability"
	"github.com/shahedul-alam/the-hotel-server/internal/domain"
	"github.com/shahedul-alam/the-hotel-server/internal/shared"
	mysqlrepo "github.com/shahedul-alam/the-hotel-server/internal/storage/mysql"
)

type roomFixture struct {
	Name          string   `json:"name"`
	City          string   `json:"city"`
	PricePerNight float64  `json:"pricePerNight"`
	Images        []string `json:"images"`
}

func main() {
	ctx := context.Background()
	_ = godotenv.Load()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Str("file", cfg.RoomsFile).Int("workers", cfg.SeedWorkers).Msg("seed starting")

	raw, err := os.ReadFile(cfg.RoomsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("read rooms file failed")
	}
	var fixtures []roomFixture
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		log.Fatal().Err(err).Msg("decode rooms file failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, f := range fixtures {
		f := f

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(f roomFixture) {
			defer wg.Done()
			defer sem.Release(1)

			room := domain.Room{
				ID:            domain.NewID(),
				Name:          f.Name,
				PricePerNight: f.PricePerNight,
				Images:        f.Images,
				BookedDates:   []string{},
			}
			if f.City != "" {
				room.City = &f.City
			}
			if err := repo.InsertRoom(ctx, room); err != nil {
				log.Warn().Str("name", f.Name).Err(err).Msg("seed room failed")
				return
			}
			log.Info().Str("id", room.ID).Str("name", f.Name).Msg("room seeded")
		}(f)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
