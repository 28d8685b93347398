package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"vet-clinic/internal/adapters/auth/jwtauth"
	"vet-clinic/internal/adapters/cache"
	mg "vet-clinic/internal/adapters/storage/mongo"
	pg "vet-clinic/internal/adapters/storage/postgres"
	"vet-clinic/internal/config"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/ports/auth"
	"vet-clinic/internal/router"
)

// @title Vet Clinic API
// @version 1.0
// @description API de gestión de clínicas veterinarias: dueños, mascotas, turnos, historias clínicas e invoices.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.NewFromEnv()
		boot.Fatal().Err(err).Msg("no pude cargar config")
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		App:    cfg.AppName,
	})

	var verifier auth.AuthVerifier
	if cfg.JWTSecret != "" {
		v, err := jwtauth.New(cfg.JWTSecret)
		if err != nil {
			log.Fatal().Err(err).Msg("verifier JWT inválido")
		}
		verifier = v
	} else {
		log.Warn().Msg("JWT_SECRET vacío: auth en modo dev (headers X-Debug-*)")
	}

	var db *sql.DB
	var mongoDB *mongodrv.Database

	switch {
	case cfg.DBDSN != "":
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("no pude conectar a Postgres")
		}
		defer db.Close()
		log.Info().Msg("storage: postgres")
	case cfg.MongoURI != "":
		client, err := mg.Connect(cfg.MongoURI)
		if err != nil {
			log.Fatal().Err(err).Msg("no pude conectar a Mongo")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()
		mongoDB = client.Database(cfg.MongoDB)
		log.Info().Str("db", cfg.MongoDB).Msg("storage: mongo")
	default:
		log.Info().Msg("storage: in-memory (modo dev, los datos no persisten)")
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = cache.Connect(cfg.RedisURL)
		if err != nil {
			// el cache es opcional: si Redis no está, seguimos sin él
			log.Warn().Err(err).Msg("Redis no disponible, catálogo sin cache")
			rdb = nil
		} else {
			log.Info().Msg("cache de catálogo habilitado")
		}
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Mongo:        mongoDB,
		Redis:        rdb,
		Log:          log,
	})

	addr := ":" + cfg.Port

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}
