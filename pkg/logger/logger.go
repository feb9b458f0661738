package logger

import (
	"log/slog"
	"os"
)

var base *slog.Logger = slog.Default()

// Init configures the process logger. Production gets JSON at info level,
// everything else text at debug level.
func Init(environment string) {
	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	base = slog.New(handler)
	slog.SetDefault(base)
}

// normalize tolerates a lone trailing error/detail arg instead of a key-value
// pair, which is how most call sites pass errors.
func normalize(args []any) []any {
	if len(args)%2 == 1 {
		last := args[len(args)-1]
		args = append(args[:len(args)-1:len(args)-1], "error", last)
	}
	return args
}

func Debug(msg string, args ...any) {
	base.Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	base.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	base.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	base.Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	base.Error(msg, normalize(args)...)
	os.Exit(1)
}
