package providers

import (
	"errors"
	"fmt"
	"goaltracker/internal/structures"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const AppName = "GoalTracker"

func DefaultConfig() *structures.Config {
	return &structures.Config{
		Tracker: structures.TrackerConfig{
			Cooldown:        10 * time.Minute,
			TickInterval:    time.Second,
			TimestampLayout: "02/01/2006 03:04 PM",
		},
		Storage: structures.StorageConfig{
			Driver:   "file",
			FilePath: "./data/goaltracker.dat",
			Compress: true,
		},
		Export: structures.ExportConfig{
			Dir:      "./data/export",
			FileName: "goal_check_history.csv",
		},
		WebServer: structures.Server{
			Host: "127.0.0.1",
			Port: 8090,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "./data/logs",
		},
		Cache: structures.CacheConfig{
			Enabled: true,
			Size:    1,
		},
		Metrics: structures.MetricsConfig{
			Enabled: true,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("tracker.cooldown", d.Tracker.Cooldown)
	v.SetDefault("tracker.tickInterval", d.Tracker.TickInterval)
	v.SetDefault("tracker.checkpointInterval", d.Tracker.CheckpointInterval)
	v.SetDefault("tracker.timestampLayout", d.Tracker.TimestampLayout)
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.filePath", d.Storage.FilePath)
	v.SetDefault("storage.compress", d.Storage.Compress)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("export.fileName", d.Export.FileName)
	v.SetDefault("webServer.host", d.WebServer.Host)
	v.SetDefault("webServer.port", d.WebServer.Port)
	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.mode", d.Logger.Mode)
	v.SetDefault("logger.dir", d.Logger.Dir)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.size", d.Cache.Size)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	dir := filepath.Dir(flags.ConfigPath)
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("unable to load .env: %w", err)
	}

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(dir)
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setDefaults(v)

	v.BindEnv("logger.level", "GOALTRACKER_LOG_LEVEL")
	v.BindEnv("storage.driver", "GOALTRACKER_STORAGE_DRIVER")
	v.BindEnv("storage.filePath", "GOALTRACKER_STORAGE_PATH")
	v.BindEnv("tracker.cooldown", "GOALTRACKER_COOLDOWN")
	v.BindEnv("webServer.port", "GOALTRACKER_PORT")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

// yamlConfig mirrors structures.Config with human-readable durations.
type yamlConfig struct {
	Tracker struct {
		Cooldown           string `yaml:"cooldown"`
		TickInterval       string `yaml:"tickInterval"`
		CheckpointInterval string `yaml:"checkpointInterval"`
		TimestampLayout    string `yaml:"timestampLayout"`
	} `yaml:"tracker"`
	Storage   structures.StorageConfig `yaml:"storage"`
	Export    structures.ExportConfig  `yaml:"export"`
	WebServer structures.Server        `yaml:"webServer"`
	Logger    structures.LoggerConfig  `yaml:"logger"`
	Cache     structures.CacheConfig   `yaml:"cache"`
	Metrics   structures.MetricsConfig `yaml:"metrics"`
}

func MarshalConfig(conf *structures.Config) ([]byte, error) {
	var y yamlConfig
	y.Tracker.Cooldown = conf.Tracker.Cooldown.String()
	y.Tracker.TickInterval = conf.Tracker.TickInterval.String()
	y.Tracker.CheckpointInterval = conf.Tracker.CheckpointInterval.String()
	y.Tracker.TimestampLayout = conf.Tracker.TimestampLayout
	y.Storage = conf.Storage
	y.Export = conf.Export
	y.WebServer = conf.WebServer
	y.Logger = conf.Logger
	y.Cache = conf.Cache
	y.Metrics = conf.Metrics
	return yaml.Marshal(&y)
}
