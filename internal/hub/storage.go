package hub

// Storage is the durable key-value facility the store persists into.
// Values are opaque JSON documents; the store owns their encoding.
type Storage interface {
	// Get returns the value stored under key.
	// ok is false (with a nil error) when the key has never been written.
	Get(key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// ValidateSetup verifies that the backend is reachable and writable.
	ValidateSetup() error

	// Close releases any resources held by the backend.
	Close() error
}
