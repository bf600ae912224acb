package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Environment-specific values (port, DB credentials, secrets) are required; the rest default.

type Config struct {
	Server      ServerConfig
	DB          DBConfig
	CORS        CORSConfig
	Log         LogConfig
	JWT         JWTConfig
	Reservation ReservationConfig
	Kafka       KafkaConfig
	Tracing     TracingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
	// Issuer must match the iss claim of tokens minted by the identity service.
	Issuer string `envconfig:"JWT_ISSUER" default:"marketplace-identity"`
}

// Hold horizon and sweeper cadence. The sweeper is safe to run on every replica.
type ReservationConfig struct {
	DefaultExpiration time.Duration `envconfig:"RESERVATION_DEFAULT_EXPIRATION" default:"15m"`
	SweepInterval     time.Duration `envconfig:"RESERVATION_SWEEP_INTERVAL" default:"5m"`
	SweepEnabled      bool          `envconfig:"RESERVATION_SWEEP_ENABLED" default:"true"`
	SweepBatchSize    int32         `envconfig:"RESERVATION_SWEEP_BATCH_SIZE" default:"200"`
}

type KafkaConfig struct {
	Enabled           bool          `envconfig:"KAFKA_ENABLED" default:"false"`
	Brokers           []string      `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	GroupID           string        `envconfig:"KAFKA_GROUP_ID" default:"catalog-stock"`
	OrderCreatedTopic string        `envconfig:"KAFKA_ORDER_CREATED_TOPIC" default:"order-created"`
	OrderStatusTopic  string        `envconfig:"KAFKA_ORDER_STATUS_TOPIC" default:"order-status-changed"`
	MaxAttempts       int           `envconfig:"KAFKA_MAX_ATTEMPTS" default:"5"`
	RetryBackoff      time.Duration `envconfig:"KAFKA_RETRY_BACKOFF" default:"200ms"`
}

type TracingConfig struct {
	// empty endpoint keeps the global no-op tracer provider
	Endpoint    string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"catalog-stock"`
	Insecure    bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
}

func (c *DBConfig) BuildDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   "/" + c.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	q.Set("timezone", c.TimeZone)
	u.RawQuery = q.Encode()
	return u.String()
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings envconfig accepts but the stock engine cannot run with.
func (c Config) Validate() error {
	var problems []error
	if c.Reservation.DefaultExpiration < time.Minute {
		problems = append(problems, errors.New("RESERVATION_DEFAULT_EXPIRATION must be at least 1m"))
	}
	if c.Reservation.SweepEnabled && c.Reservation.SweepInterval <= 0 {
		problems = append(problems, errors.New("RESERVATION_SWEEP_INTERVAL must be positive when the sweeper is enabled"))
	}
	if c.Reservation.SweepBatchSize <= 0 {
		problems = append(problems, errors.New("RESERVATION_SWEEP_BATCH_SIZE must be positive"))
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		problems = append(problems, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is set"))
	}
	if c.Kafka.MaxAttempts < 1 {
		problems = append(problems, errors.New("KAFKA_MAX_ATTEMPTS must be at least 1"))
	}
	if _, err := time.ParseDuration(c.JWT.Duration); err != nil {
		problems = append(problems, fmt.Errorf("JWT_DURATION: %w", err))
	}
	return errors.Join(problems...)
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
			Issuer:   "marketplace-identity",
		},
		Reservation: ReservationConfig{
			DefaultExpiration: 15 * time.Minute,
			SweepInterval:     time.Minute,
			SweepEnabled:      false,
			SweepBatchSize:    50,
		},
		Kafka: KafkaConfig{
			Enabled:           false,
			GroupID:           "catalog-stock-test",
			OrderCreatedTopic: "order-created",
			OrderStatusTopic:  "order-status-changed",
			MaxAttempts:       3,
			RetryBackoff:      10 * time.Millisecond,
		},
		Tracing: TracingConfig{
			ServiceName: "catalog-stock-test",
		},
	}
}
