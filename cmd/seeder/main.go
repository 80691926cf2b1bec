// The seeder loads a JSON file of rooms and hotspots into the store, assigning
// IDs where missing and backfilling coordinates through the geocoder so that
// geo search works for listings that only carry a location label.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"roomradar/internal/adapters/geocode"
	"roomradar/internal/adapters/observability"
	"roomradar/internal/domain"
	"roomradar/internal/shared"
	mysqlrepo "roomradar/internal/storage/mysql"
)

type seedFile struct {
	Rooms    []domain.Room    `json:"rooms"`
	Hotspots []domain.Hotspot `json:"hotspots"`
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("file", cfg.SeedFile).
		Int("workers", cfg.Workers).
		Msg("seeder starting")

	raw, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("read seed file failed")
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		log.Fatal().Err(err).Msg("parse seed file failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	store := mysqlrepo.New(db)

	geocoder, err := geocode.New(cfg.GeocoderBase, cfg.GeocoderUA, cfg.GeocoderRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize geocoder")
	}

	for _, h := range seed.Hotspots {
		if h.ID == "" {
			h.ID = uuid.NewString()
		}
		if err := store.UpsertHotspot(ctx, h); err != nil {
			log.Warn().Str("name", h.Name).Err(err).Msg("hotspot upsert failed")
			continue
		}
		log.Info().Str("name", h.Name).Msg("hotspot ok")
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, r := range seed.Rooms {
		r := r
		if r.ID == "" {
			r.ID = uuid.NewString()
		}

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(room domain.Room) {
			defer wg.Done()
			defer sem.Release(1)

			if !room.HasCoords() && room.Location != "" {
				place, err := geocoder.Geocode(ctx, room.Location)
				if err != nil {
					log.Warn().Str("id", room.ID).Err(err).Msg("geocode failed, seeding without coords")
				} else if place != nil {
					room.Lat, room.Lon = &place.Lat, &place.Lon
				}
			}

			if err := store.UpsertRoom(ctx, room); err != nil {
				log.Warn().Str("id", room.ID).Err(err).Msg("room upsert failed")
				return
			}
			log.Info().Str("id", room.ID).Msg("room ok")
		}(r)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
