package kv

// Store defines the interface for a key-value store.
// Implementations of this interface can be swapped out,
// allowing for decorators such as metrics around the in-memory backend.
type Store interface {
	// Get retrieves the value associated with the given key.
	// Returns the value and true if the key exists, or empty string and false if not.
	// A stored empty string is reported as ("", true).
	Get(key string) (string, bool)

	// Put stores a key-value pair, replacing any previous value.
	// Returns an error if the operation fails.
	Put(key, value string) error

	// Delete removes a key from the store.
	// Reports whether the key existed. Deleting a missing key is not an error.
	Delete(key string) (bool, error)
}
