package component

// ConfigLoader provides unified configuration reading for components.
//
// Components read their own configuration sections through this interface
// instead of depending on a concrete configuration structure.
type ConfigLoader interface {
	// Get returns the raw configuration value for a key
	// (e.g. "emitter.pool_size").
	Get(key string) interface{}

	// Unmarshal deserializes a configuration section into a struct.
	//
	// Example:
	//
	//	var cfg emitter.Config
	//	if err := loader.Unmarshal("emitter", &cfg); err != nil {
	//	    return err
	//	}
	Unmarshal(key string, v interface{}) error

	// GetString returns a string configuration value.
	GetString(key string) string

	// GetInt returns an integer configuration value.
	GetInt(key string) int

	// GetBool returns a boolean configuration value.
	GetBool(key string) bool

	// IsSet reports whether a configuration key is present.
	IsSet(key string) bool
}
