package interfaces

// PreferenceStoreInterface is a flat string key/value store. Commit applies a
// batch of writes at once; keys absent from the batch keep their values.
type PreferenceStoreInterface interface {
	Get(key string) (string, bool, error)
	Commit(values map[string]string) error
	Close() error
}
