package di

import (
	"goaltracker/internal/providers"
	"goaltracker/internal/services"
	"goaltracker/internal/storage"
	storageInterfaces "goaltracker/internal/storage/interfaces"
	"goaltracker/internal/structures"
)

func provideLogger(conf *structures.Config) (providers.Logger, func(), error) {
	logger, err := providers.NewLogProvider(conf)
	if err != nil {
		return nil, nil, err
	}
	return logger, logger.Close, nil
}

func providePreferenceStore(conf *structures.Config, compressor storageInterfaces.CompressorInterface, logger providers.Logger) (storageInterfaces.PreferenceStoreInterface, func(), error) {
	store, err := storage.NewPreferenceStore(conf, compressor, logger)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Closing store: %s", err)
		}
	}, nil
}

func provideGaugeSource(service services.TrackerServiceInterface) providers.TrackerGaugeSource {
	return service
}
