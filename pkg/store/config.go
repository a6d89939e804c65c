package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator"
	"github.com/spf13/viper"

	"tableflip.dev/daily/pkg/timeutil"
)

// DefaultPath is where the journal lives when nothing else is configured.
const DefaultPath = "~/.daily"

// Config supplies defaults for the store and the CLI around it.
type Config interface {
	BasePath() string
	Order() Order
	Horizon() timeutil.Interval
	ShowID() bool
	LogLevel() string
}

// LoadConfig reads .daily.yaml from $DAILY_CONFIG_PATH or the working
// directory, overlaid with DAILY_* environment variables. A missing config
// file is not an error.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("order", string(OrderDate))
	v.SetDefault("horizon", timeutil.DefaultHorizon)
	v.SetDefault("show_id", false)
	v.SetDefault("log_level", "warn")
	v.SetConfigName(".daily") // .yaml is implicit
	v.SetEnvPrefix("DAILY")
	v.AutomaticEnv()

	if override := os.Getenv("DAILY_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	return newFileConfig(
		v.GetString("path"),
		v.GetString("order"),
		v.GetString("horizon"),
		v.GetBool("show_id"),
		v.GetString("log_level"),
	)
}

type fileConfig struct {
	Path      string `validate:"required"`
	OrderName string `validate:"oneof=date insertion"`
	Window    string `validate:"required"`
	Level     string `validate:"oneof=trace debug info warn error fatal panic disabled"`
	ID        bool

	horizon timeutil.Interval
}

func newFileConfig(path, order, horizon string, showID bool, level string) (*fileConfig, error) {
	f := &fileConfig{
		Path:      path,
		OrderName: order,
		Window:    horizon,
		Level:     level,
		ID:        showID,
	}
	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("store: invalid config: %w", err)
	}
	iv, err := timeutil.ParseInterval(horizon)
	if err != nil {
		return nil, fmt.Errorf("store: invalid config horizon %q: %w", horizon, err)
	}
	f.horizon = iv
	return f, nil
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Order() Order {
	return Order(f.OrderName)
}

func (f *fileConfig) Horizon() timeutil.Interval {
	return f.horizon
}

func (f *fileConfig) ShowID() bool {
	return f.ID
}

func (f *fileConfig) LogLevel() string {
	return f.Level
}

// StaticConfig is a Config with fixed values, for tests and embedding.
type StaticConfig struct {
	Path          string
	JournalOrder  Order
	UpcomingRange timeutil.Interval
	IDs           bool
	Level         string
}

func (c StaticConfig) BasePath() string { return c.Path }

func (c StaticConfig) Order() Order {
	if c.JournalOrder == "" {
		return OrderDate
	}
	return c.JournalOrder
}

func (c StaticConfig) Horizon() timeutil.Interval {
	if c.UpcomingRange.IsZero() {
		return timeutil.MustInterval(timeutil.DefaultHorizon)
	}
	return c.UpcomingRange
}

func (c StaticConfig) ShowID() bool { return c.IDs }

func (c StaticConfig) LogLevel() string {
	if c.Level == "" {
		return "warn"
	}
	return c.Level
}
