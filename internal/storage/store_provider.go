package storage

import (
	"fmt"
	"goaltracker/internal/providers"
	"goaltracker/internal/storage/interfaces"
	"goaltracker/internal/structures"
)

func NewPreferenceStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) (interfaces.PreferenceStoreInterface, error) {
	switch conf.Storage.Driver {
	case "sqlite":
		logger.Infof(providers.TypeApp, "Using sqlite preferences at %s", conf.Storage.FilePath)
		return NewSQLiteStore(conf.Storage.FilePath)
	case "file", "":
		logger.Infof(providers.TypeApp, "Using file preferences at %s (compress=%t)", conf.Storage.FilePath, conf.Storage.Compress)
		return NewFileStore(conf.Storage.FilePath, compressor, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}
