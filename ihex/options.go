package ihex

// Config holds the session configuration.
type Config struct {
	// Logger is used for logging session events (optional)
	Logger Logger

	// ProgressCallback is called after every record read (optional)
	ProgressCallback ProgressCallback

	// RequireEndRecord makes a read session fail with ErrMissingEndRecord
	// when the file ends without an EndOfFile record
	RequireEndRecord bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{}
}

// Option is a functional option for configuring a File.
type Option func(*Config)

// WithLogger sets a logger for session operations.
//
// Example:
//
//	f, err := ihex.Load("firmware.hex", ihex.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithProgressCallback sets a callback function to track read progress.
//
// Example:
//
//	f, err := ihex.Load("firmware.hex",
//	    ihex.WithProgressCallback(func(p ihex.Progress) {
//	        fmt.Printf("%.1f%% read\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithRequireEndRecord controls whether reaching the end of the file
// without an EndOfFile record is an error. Default is false.
func WithRequireEndRecord(require bool) Option {
	return func(c *Config) {
		c.RequireEndRecord = require
	}
}
