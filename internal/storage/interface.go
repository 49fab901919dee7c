package storage

// KV is the per-device key-value store the journal persists into. Values are
// opaque strings; the repositories own their serialization.
type KV interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns the value stored under key and whether it exists.
	Get(key string) (string, bool, error)
	// Set overwrites the value stored under key.
	Set(key, value string) error

	// Utils
	GetConfigPath() string
}
