package storage

import (
	"fmt"
	json "github.com/goccy/go-json"
	"goaltracker/internal/providers"
	"goaltracker/internal/storage/interfaces"
	"maps"
	"os"
	"sync"
)

// FileStore keeps preferences in memory and mirrors every commit to a single
// JSON document on disk, optionally zstd-compressed.
type FileStore struct {
	mu         sync.RWMutex
	path       string
	values     map[string]string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileStore(path string, compressor interfaces.CompressorInterface, logger providers.Logger) (*FileStore, error) {
	fs := &FileStore{
		path:       path,
		values:     make(map[string]string),
		compressor: compressor,
		logger:     logger,
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) load() error {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read preferences %s: %w", fs.path, err)
	}

	values := make(map[string]string)
	decompressed, err := fs.compressor.Decompress(data)
	if err == nil && json.Unmarshal(decompressed, &values) == nil {
		fs.values = values
		return nil
	}

	// compression may have been toggled since the file was written
	if json.Unmarshal(data, &values) == nil {
		fs.logger.Warnf(providers.TypeApp, "Preferences %s were not compressed, reading as plain JSON", fs.path)
		fs.values = values
		return nil
	}

	fs.logger.Warnf(providers.TypeApp, "Preferences %s are unreadable, starting empty", fs.path)
	return nil
}

func (fs *FileStore) Get(key string) (string, bool, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	val, ok := fs.values[key]
	return val, ok, nil
}

func (fs *FileStore) Commit(values map[string]string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	next := maps.Clone(fs.values)
	maps.Copy(next, values)

	jsonData, err := json.Marshal(next)
	if err != nil {
		return err
	}
	data, err := fs.compressor.Compress(jsonData)
	if err != nil {
		return err
	}
	if err := WriteFileAtomic(fs.path, data, 0644); err != nil {
		return err
	}

	fs.values = next
	return nil
}

func (fs *FileStore) Close() error {
	return nil
}
