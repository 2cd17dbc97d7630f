package core

// Logger is the minimal logging interface used across the renderer and server
type Logger interface {
	Printf(format string, args ...interface{})
}
