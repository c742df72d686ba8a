package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type TrackerConfig struct {
	Cooldown           time.Duration `yaml:"cooldown" validate:"required|min:1"`
	TickInterval       time.Duration `yaml:"tickInterval" validate:"required|min:1"`
	CheckpointInterval time.Duration `yaml:"checkpointInterval"`
	TimestampLayout    string        `yaml:"timestampLayout" validate:"required"`
}

type StorageConfig struct {
	Driver   string `yaml:"driver" validate:"required|in:file,sqlite"`
	FilePath string `yaml:"filePath" validate:"required"`
	Compress bool   `yaml:"compress"`
}

type ExportConfig struct {
	Dir      string `yaml:"dir" validate:"required"`
	FileName string `yaml:"fileName" validate:"required"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string        `yaml:"-"`
	Debug     bool          `yaml:"-"`
	Path      string        `yaml:"-"`
	Tracker   TrackerConfig `yaml:"tracker"`
	Storage   StorageConfig `yaml:"storage"`
	Export    ExportConfig  `yaml:"export"`
	WebServer Server        `yaml:"webServer"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
