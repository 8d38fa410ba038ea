package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"
)

const (
	SourceStub     = "stub"
	SourceBelgium  = "belgium"
	SourceFile     = "file"
	SourceDatabase = "database"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Planner struct {
		EnforceYearEndBoundary bool `env:"ENFORCE_YEAR_END_BOUNDARY" envDefault:"false"`
		WeekdaysOnly           bool `env:"WEEKDAYS_ONLY" envDefault:"true"`
		Columns                int  `env:"COLUMNS" envDefault:"7"`
		MaxRangeDays           int  `env:"MAX_RANGE_DAYS" envDefault:"731"`
	} `envPrefix:"PLANNER_"`
	Calendar struct {
		Sources      []string `env:"SOURCES" envSeparator:"," envDefault:"stub"`
		File         string   `env:"FILE" envDefault:"./data/calendar.txt"`
		RegionALabel string   `env:"REGION_A_LABEL" envDefault:"Flemish school holiday"`
		RegionBLabel string   `env:"REGION_B_LABEL" envDefault:"Walloon school holiday"`
	} `envPrefix:"CALENDAR_"`
	Database struct {
		DSN            string `env:"DSN"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout   int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		MaxOpenConns   int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns   int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime    int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Redis struct {
		Enabled          bool   `env:"ENABLED" envDefault:"false"`
		Host             string `env:"HOST" envDefault:"localhost"`
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD"`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"2"`
	} `envPrefix:"REDIS_"`
	Session struct {
		Secret      string `env:"SECRET,required,notEmpty"`
		CookieName  string `env:"COOKIE_NAME" envDefault:"__leave_planner_session"`
		Expiration  int    `env:"EXPIRATION" envDefault:"31536000"` // 365 days
		IdleTimeout int    `env:"IDLE_TIMEOUT" envDefault:"7200"`
		CSRF        bool   `env:"CSRF" envDefault:"true"`
	} `envPrefix:"SESSION_"`
	RabbitMQ struct {
		DSN            string `env:"DSN"`
		Queue          string `env:"QUEUE" envDefault:"email_queue"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Email struct {
		TemplateDir string `env:"TEMPLATE_DIR" envDefault:"./templates"`
		SMTP        struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok && len(aggErr.Errors) > 0 {
			// only the first one keeps the log readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks rules that span several fields.
func (c *Config) Validate() error {
	for _, source := range c.Calendar.Sources {
		switch source {
		case SourceStub, SourceBelgium, SourceFile, SourceDatabase:
		default:
			return fmt.Errorf("unknown calendar source %q", source)
		}
	}

	if c.UsesSource(SourceDatabase) && c.Database.DSN == "" {
		return errors.New("DATABASE_DSN is required when the database calendar source is enabled")
	}

	if c.Planner.Columns <= 0 {
		return errors.New("PLANNER_COLUMNS must be positive")
	}

	return nil
}

func (c *Config) UsesSource(source string) bool {
	return slices.Contains(c.Calendar.Sources, source)
}

func (c *Config) SharingEnabled() bool {
	return c.RabbitMQ.DSN != ""
}
