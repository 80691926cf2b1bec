package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"roomradar/internal/adapters/geocode"
	server "roomradar/internal/adapters/http_server"
	"roomradar/internal/adapters/observability"
	redisad "roomradar/internal/adapters/redis"
	"roomradar/internal/app"
	"roomradar/internal/hotspot"
	"roomradar/internal/search"
	"roomradar/internal/shared"
	mysqlrepo "roomradar/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	store := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	geocoder, err := geocode.New(cfg.GeocoderBase, cfg.GeocoderUA, cfg.GeocoderRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize geocoder")
	}

	catalog := hotspot.NewCatalog(store)
	topRooms := search.NewTopRoomCache(store, cfg.TopRoomTTL)
	engine := search.NewEngine(search.EngineOptions{
		TopRooms:        topRooms,
		HotspotRadiusKm: cfg.HotspotRadiusKm,
		Logger:          log.Logger,
	})
	nearPlace := search.NewNearPlaceSearcher(
		&search.PlaceResolver{Catalog: catalog, Geocoder: geocoder},
		cfg.NearPlaceRadiusKm,
		log.Logger,
	)
	svc := app.NewSearchService(store, cache, catalog, engine, nearPlace, topRooms, cfg.RoomCacheTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc})

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("strategy", string(engine.Strategy())).
		Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
