package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	GeocoderBase string
	GeocoderUA   string
	GeocoderRPS  int

	// NearPlaceRadiusKm (1 km) and HotspotRadiusKm (2 km) are deliberately
	// distinct: the "near <place>" path and the hotspot path have always
	// filtered with different radii, and unifying them would change results.
	NearPlaceRadiusKm float64
	HotspotRadiusKm   float64

	RoomCacheTTL time.Duration // redis room-list cache
	TopRoomTTL   time.Duration // in-process promoted-room cache

	Workers  int    // seeder concurrency
	SeedFile string // seeder input
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:            env("APP_ENV", "prod"),
		HTTPAddr:          env("HTTP_ADDR", ":8080"),
		MetricsAddr:       env("METRICS_ADDR", ":9100"),
		MySQLDSN:          env("MYSQL_DSN", "root:root@tcp(localhost:3306)/roomradar?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:         env("REDIS_ADDR", "localhost:6379"),
		RedisPass:         env("REDIS_PASSWORD", ""),
		RedisDB:           atoi("REDIS_DB", 0),
		GeocoderBase:      env("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUA:        env("GEOCODER_USER_AGENT", "roomradar/1.0"),
		GeocoderRPS:       atoi("GEOCODER_RPS", 1),
		NearPlaceRadiusKm: atof("NEAR_PLACE_RADIUS_KM", 1),
		HotspotRadiusKm:   atof("HOTSPOT_RADIUS_KM", 2),
		RoomCacheTTL:      time.Duration(atoi("ROOM_CACHE_TTL_SECONDS", 60)) * time.Second,
		TopRoomTTL:        time.Duration(atoi("TOP_ROOM_TTL_SECONDS", 300)) * time.Second,
		Workers:           atoi("SEED_WORKERS", 8),
		SeedFile:          env("SEED_FILE", "seed/rooms.json"),
	}
	if c.GeocoderBase == "" {
		log.Warn().Msg("GEOCODER_BASE_URL is empty, near-place search limited to hotspots")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
