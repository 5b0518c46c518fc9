package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	CatalogBackendMongoDB  = "mongodb"
	CatalogBackendPostgres = "postgres"
	CatalogBackendHTTP     = "http"
)

type Config struct {
	ServicePort      string
	MetricsPort      string
	Environment      string
	CatalogBackend   string
	CatalogURL       string
	PostgreSQLConfig PostgreSQLConfig
	MongoDBConfig    MongoDBConfig
	KafkaConfig      KafkaConfig
	TracingConfig    TracingConfig
	CartConfig       CartConfig
	ImageConfig      ImageConfig
	SessionSecret    string
	JWTSecret        string
}

type PostgreSQLConfig struct {
	DBHost     string
	DBName     string
	DBPort     string
	DBUsername string
	DBPassword string
}

type MongoDBConfig struct {
	URI    string
	DBName string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type TracingConfig struct {
	CollectorHost string
}

type CartConfig struct {
	DBPath        string
	TTL           time.Duration
	PurgeInterval time.Duration
}

type ImageConfig struct {
	ThumbWidth  int
	ThumbHeight int
	ThumbFormat string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort:    os.Getenv("SERVICE_PORT"),
		MetricsPort:    os.Getenv("METRICS_PORT"),
		Environment:    os.Getenv("ENVIRONMENT"),
		CatalogBackend: os.Getenv("CATALOG_BACKEND"),
		CatalogURL:     os.Getenv("CATALOG_URL"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     os.Getenv("DB_PORT"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		MongoDBConfig: MongoDBConfig{
			URI:    os.Getenv("MONGO_URI"),
			DBName: os.Getenv("MONGO_DB_NAME"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   os.Getenv("BROKER_TOPIC"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		CartConfig: CartConfig{
			DBPath:        os.Getenv("CART_DB_PATH"),
			TTL:           cast.ToDuration(os.Getenv("CART_TTL")),
			PurgeInterval: cast.ToDuration(os.Getenv("CART_PURGE_INTERVAL")),
		},
		ImageConfig: ImageConfig{
			ThumbWidth:  cast.ToInt(os.Getenv("IMAGE_HOST_THUMB_WIDTH")),
			ThumbHeight: cast.ToInt(os.Getenv("IMAGE_HOST_THUMB_HEIGHT")),
			ThumbFormat: os.Getenv("IMAGE_HOST_THUMB_FORMAT"),
		},
		SessionSecret: os.Getenv("SESSION_SECRET"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}

	brokerPartition, err := strconv.Atoi(os.Getenv("BROKER_PARTITION"))
	if err == nil {
		conf.KafkaConfig.BrokerPartition = brokerPartition
	}

	conf.applyDefaults()

	return &conf
}

func (c *Config) applyDefaults() {
	if c.ServicePort == "" {
		c.ServicePort = "8080"
	}

	if c.CatalogBackend == "" {
		c.CatalogBackend = CatalogBackendMongoDB
	}

	if c.MongoDBConfig.DBName == "" {
		c.MongoDBConfig.DBName = "storefront"
	}

	if c.CartConfig.DBPath == "" {
		c.CartConfig.DBPath = "cart.db"
	}

	if c.CartConfig.TTL <= 0 {
		c.CartConfig.TTL = 30 * 24 * time.Hour
	}

	if c.CartConfig.PurgeInterval <= 0 {
		c.CartConfig.PurgeInterval = time.Hour
	}

	if c.ImageConfig.ThumbWidth <= 0 {
		c.ImageConfig.ThumbWidth = 400
	}

	if c.ImageConfig.ThumbHeight <= 0 {
		c.ImageConfig.ThumbHeight = 400
	}

	if c.ImageConfig.ThumbFormat == "" {
		c.ImageConfig.ThumbFormat = "auto"
	}
}

func (c *Config) PostgresEnabled() bool {
	return c.PostgreSQLConfig.DBHost != ""
}
