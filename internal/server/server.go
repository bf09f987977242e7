package server

import (
	"context"
	"io"
	"log"

	"github.com/burakkosova/mapty/internal/api"
	"github.com/burakkosova/mapty/internal/app"
	"github.com/burakkosova/mapty/internal/config"
	"github.com/burakkosova/mapty/internal/db"
	"github.com/burakkosova/mapty/internal/geo"
	"github.com/burakkosova/mapty/internal/kv"
	"github.com/burakkosova/mapty/internal/store"
	"github.com/burakkosova/mapty/internal/stream"
	"github.com/burakkosova/mapty/internal/ui"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Topic is the stream topic all page events are published on.
const Topic = "app"

const redisKeyPrefix = "mapty:"

type Server struct {
	App        *fiber.App
	Cfg        config.Config
	DB         *pgxpool.Pool
	Redis      *redis.Client
	Stream     *stream.Hub
	Backend    kv.Store
	Controller *app.Controller
	Maps       *ui.Maps
	Page       *ui.Page
	Locator    *geo.Client
}

func NewServer(cfg config.Config, pg *pgxpool.Pool, redisClient *redis.Client) *Server {
	fiberApp := fiber.New()
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	hub := stream.NewHub(redisClient)
	s := &Server{
		App:    fiberApp,
		Cfg:    cfg,
		DB:     pg,
		Redis:  redisClient,
		Stream: hub,
		Maps:   ui.NewMaps(hub, Topic),
		Page:   ui.NewPage(hub, Topic),
	}

	s.Backend = newBackend(cfg, pg, redisClient)

	var locator geo.Locator
	if cfg.GeoMode == "fixed" {
		locator = geo.Fixed{Position: geo.Coords{Lat: cfg.GeoLat, Lng: cfg.GeoLng}}
	} else {
		s.Locator = geo.NewClient()
		s.Locator.OnRequest = func() {
			hub.Publish(Topic, stream.NewEvent("geolocation.request", nil))
		}
		locator = s.Locator
	}

	s.Controller = app.New(app.Deps{
		Store:   store.New(s.Backend, cfg.StorageKey),
		Locator: locator,
		NewMap: func(center geo.Coords, zoom int) app.Map {
			return s.Maps.NewMap(center, zoom)
		},
		Form:     s.Page,
		List:     s.Page,
		Notifier: s.Page,
	}, app.Options{
		Zoom:             cfg.MapZoom,
		TileURL:          cfg.TileURL,
		TileAttribution:  cfg.TileAttribution,
		FormRestoreDelay: cfg.FormRestoreDelay,
	})

	registerRoutes(s)
	s.Controller.Start(context.Background())
	return s
}

// newBackend picks the storage slot backend, falling back to memory when the
// configured one has no connection.
func newBackend(cfg config.Config, pg *pgxpool.Pool, redisClient *redis.Client) kv.Store {
	switch cfg.StorageDriver {
	case "bolt":
		b, err := kv.OpenBolt(cfg.BoltPath)
		if err == nil {
			return b
		}
		log.Printf("open bolt store %s: %v", cfg.BoltPath, err)
	case "redis":
		if redisClient != nil {
			return kv.NewRedis(redisClient, redisKeyPrefix)
		}
	case "postgres":
		if pg != nil {
			if err := db.EnsureSchema(context.Background(), pg); err != nil {
				log.Printf("kv schema: %v", err)
			}
			return kv.NewPostgres(pg)
		}
	case "memory", "":
		return kv.NewMemory()
	}
	log.Printf("storage driver %q unavailable, keeping workouts in memory", cfg.StorageDriver)
	return kv.NewMemory()
}

// Close stops the stream subscription and releases a file-backed store.
// Pool and client connections belong to the caller.
func (s *Server) Close() error {
	err := s.Stream.Close()
	if c, ok := s.Backend.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api.RegisterRoutes(s.App, s.Controller, api.Surfaces{Maps: s.Maps, Page: s.Page, Locator: s.Locator})
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream, Topic)
}
