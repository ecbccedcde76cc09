package logger

import (
	"fmt"
	"os"
	"time"
)

// ANSI color codes for console output
const (
	ColorReset        = "\033[0m"
	ColorCyan         = "\033[36m"
	ColorGreen        = "\033[32m"
	ColorBrightRed    = "\033[91m"
	ColorBrightYellow = "\033[93m"
	ColorBrightGray   = "\033[90m"
)

// Column widths for aligned console output
const (
	ComponentNameWidth = 16 // Fixed width for component names
	LogLevelWidth      = 5  // Fixed width for log levels (ERROR, WARN, etc.)
)

// Logger provides leveled, component-tagged console logging
type Logger struct {
	component    string
	colorEnabled bool
}

// New creates a new logger instance for a named component
func New(component string) *Logger {
	return &Logger{
		component:    component,
		colorEnabled: isTerminal(),
	}
}

// WithComponent returns a logger tagged with a different component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component:    component,
		colorEnabled: l.colorEnabled,
	}
}

// isTerminal checks if we're outputting to a terminal (for color support)
func isTerminal() bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

func (l *Logger) colorForLevel(level string) string {
	if !l.colorEnabled {
		return ""
	}

	switch level {
	case "DEBUG":
		return ColorBrightGray
	case "INFO":
		return ColorGreen
	case "WARN":
		return ColorBrightYellow
	case "ERROR", "FATAL":
		return ColorBrightRed
	default:
		return ColorReset
	}
}

// formatComponent truncates and pads the component name for consistent columns
func formatComponent(component string) string {
	if len(component) > ComponentNameWidth {
		return component[:ComponentNameWidth-1] + "…"
	}
	return fmt.Sprintf("%-*s", ComponentNameWidth, component)
}

func (l *Logger) log(level, message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")

	color := l.colorForLevel(level)
	resetColor := ""
	if l.colorEnabled {
		resetColor = ColorReset
	}

	fmt.Printf("%s[%s] [%s] [%s%-*s%s] %s%s\n",
		ColorCyan, timestamp, formatComponent(l.component),
		color, LogLevelWidth, level, resetColor, message, resetColor)
}

// Debug logs a debug message with optional formatting
func (l *Logger) Debug(message string, args ...interface{}) {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	l.log("DEBUG", message)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log("DEBUG", fmt.Sprintf(format, args...))
}

// Info logs an info message with optional formatting
func (l *Logger) Info(message string, args ...interface{}) {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	l.log("INFO", message)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log("INFO", fmt.Sprintf(format, args...))
}

// Warn logs a warning message with optional formatting
func (l *Logger) Warn(message string, args ...interface{}) {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	l.log("WARN", message)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log("WARN", fmt.Sprintf(format, args...))
}

// Error logs an error message with optional formatting
func (l *Logger) Error(message string, args ...interface{}) {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	l.log("ERROR", message)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log("ERROR", fmt.Sprintf(format, args...))
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(message string) {
	l.log("FATAL", message)
	os.Exit(1)
}

// Fatalf logs a formatted fatal message and exits
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log("FATAL", fmt.Sprintf(format, args...))
	os.Exit(1)
}
