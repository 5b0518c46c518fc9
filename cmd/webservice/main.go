package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "time/tzdata"

	"github.com/Blacksatth/Pagina-Web/config"
	"github.com/Blacksatth/Pagina-Web/internal/app"
	"github.com/Blacksatth/Pagina-Web/internal/infrastructure/database/bolt"
	"github.com/Blacksatth/Pagina-Web/internal/infrastructure/database/mongodb"
	"github.com/Blacksatth/Pagina-Web/internal/infrastructure/database/postgres"
	"github.com/Blacksatth/Pagina-Web/internal/infrastructure/message-queue/kafka"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	config := config.CreateNewConfig()
	application := app.App{Config: config}

	if config.PostgresEnabled() {
		db, err := postgres.GetDBInstance(config.PostgreSQLConfig.DBUsername, config.PostgreSQLConfig.DBPassword, config.PostgreSQLConfig.DBHost, config.PostgreSQLConfig.DBPort, config.PostgreSQLConfig.DBName)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to postgres")
		}
		defer db.Close()
		application.DB = db
	}

	if config.MongoDBConfig.URI != "" {
		mongoDB, err := mongodb.ConnectToMongoDB(config.MongoDBConfig.URI, config.MongoDBConfig.DBName)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to mongodb")
		}
		defer mongoDB.Client().Disconnect(context.Background())
		application.MongoDB = mongoDB
	}

	cartDB, err := bolt.Open(config.CartConfig.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cart database")
	}
	defer cartDB.Close()
	application.CartDB = cartDB

	if config.KafkaConfig.BrokerAddress != "" {
		kafkaProducer, err := kafka.CreateKafkaProducer(config)
		if err != nil {
			log.Error().Err(err).Msg("Failed to connect to kafka, product events are dropped")
		} else {
			defer kafkaProducer.Close()
			application.KafkaConn = kafkaProducer
		}
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		if err := application.StopServer(); err != nil {
			log.Error().Err(err).Msg("Failed to stop server")
		}
	}()

	application.Start()
}
