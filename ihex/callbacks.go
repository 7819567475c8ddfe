package ihex

// Progress contains information about read progress.
// Passed to ProgressCallback after each record.
type Progress struct {
	// Records is the number of records read so far
	Records int

	// BytesRead is the number of file bytes consumed so far
	BytesRead int64

	// TotalBytes is the file size, or 0 when unknown
	TotalBytes int64

	// Percentage is the completion percentage (0.0 to 100.0), or 0 when
	// TotalBytes is unknown
	Percentage float64
}

// ProgressCallback is called after every record a read session yields.
// Implementations should return quickly.
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to a session.
// This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	f, err := ihex.Load("firmware.hex", ihex.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
