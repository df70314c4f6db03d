package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port     int            `mapstructure:"port"`
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Model    ModelConfig    `mapstructure:"model"`
	Forecast ForecastConfig `mapstructure:"forecast"`
}

type ForecastConfig struct {
	// requests asking for more days are rejected, 0 disables the limit
	MaxPeriodDays int `mapstructure:"maxPeriodDays"`
}

type DatasetConfig struct {
	// csv or postgres
	Source  string    `mapstructure:"source"`
	CsvPath string    `mapstructure:"csvPath"`
	Db      DbSecrets `mapstructure:"db"`
}

type ModelConfig struct {
	NumTrees     int     `mapstructure:"numTrees"`
	Seed         uint64  `mapstructure:"seed"`
	TestFraction float64 `mapstructure:"testFraction"`
	MaxDepth     int     `mapstructure:"maxDepth"`
	// 0 disables the trained model cache
	CacheSize int `mapstructure:"cacheSize"`
}

type DbSecrets struct {
	Host      string `mapstructure:"host"`
	User      string `mapstructure:"user"`
	Port      string `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	Database  string `mapstructure:"database"`
	EnableSsl bool   `mapstructure:"enableSsl"`
}

func (t DbSecrets) ToConnectionStr() string {
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 3009)
	v.SetDefault("dataset.source", "csv")
	v.SetDefault("dataset.csvPath", "all_agricultural_products_data.csv")
	v.SetDefault("dataset.db.host", "localhost")
	v.SetDefault("dataset.db.port", "5432")
	v.SetDefault("dataset.db.user", "postgres")
	v.SetDefault("dataset.db.password", "")
	v.SetDefault("dataset.db.database", "postgres")
	v.SetDefault("dataset.db.enableSsl", false)
	v.SetDefault("model.numTrees", 100)
	v.SetDefault("model.seed", 42)
	v.SetDefault("model.testFraction", 0.2)
	v.SetDefault("model.maxDepth", 0)
	v.SetDefault("model.cacheSize", 0)
	v.SetDefault("forecast.maxPeriodDays", 3650)
}

func configFile() string {
	switch strings.ToLower(os.Getenv("FORECAST_ENV")) {
	case "dev":
		return "config-dev.json"
	case "test":
		return "config-test.json"
	}
	return "/go/src/app/config.json"
}

// LoadConfig reads the config file for the current FORECAST_ENV, or
// path when it is set. a missing file is fine, defaults apply, and any
// key can be overridden with FORECAST_<SECTION>_<KEY> env vars
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = configFile()
	}
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetEnvPrefix("FORECAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not read config %s: %w", path, err)
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Model.NumTrees <= 0 {
		return nil, fmt.Errorf("model.numTrees must be positive, got %d", cfg.Model.NumTrees)
	}
	if cfg.Model.TestFraction < 0 || cfg.Model.TestFraction >= 1 {
		return nil, fmt.Errorf("model.testFraction must be in [0, 1), got %v", cfg.Model.TestFraction)
	}

	if cfg.Forecast.MaxPeriodDays < 0 {
		return nil, fmt.Errorf("forecast.maxPeriodDays must not be negative, got %d", cfg.Forecast.MaxPeriodDays)
	}

	return &cfg, nil
}
