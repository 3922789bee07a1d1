package logsvc

import (
	"log"

	"github.com/spaceacademy/backoffice/core"
)

// ConsoleLogger prints to the standard logger only. It backs DEV and test
// runs where shipping events to Rollbar makes no sense.
type ConsoleLogger struct {
	std     *log.Logger
	enabled bool
}

var _ core.Logger = (*ConsoleLogger)(nil)

func NewConsoleLogger(std *log.Logger) *ConsoleLogger {
	return &ConsoleLogger{std: std, enabled: true}
}

func (l *ConsoleLogger) Enable(enabled bool) { l.enabled = enabled }

func (l *ConsoleLogger) print(lvl, msg string, args []interface{}) {
	if !l.enabled {
		return
	}
	l.std.Printf("%s: %s\n", lvl, msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) { l.print("DEBUG", msg, args) }
func (l *ConsoleLogger) Info(msg string, args ...interface{})  { l.print("INFO", msg, args) }
func (l *ConsoleLogger) Warn(msg string, args ...interface{})  { l.print("WARN", msg, args) }
func (l *ConsoleLogger) Error(msg string, args ...interface{}) { l.print("ERROR", msg, args) }

func (l *ConsoleLogger) Fatal(msg string, args ...interface{}) {
	l.print("FATAL", msg, args)
	l.std.Fatal(msg)
}
