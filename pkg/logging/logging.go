// Package logging backs ectologger with a zap core.
package logging

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Pretty logs use zap's development encoder,
// JSON lines are written otherwise.
func New(cfg *config.Config) (ectologger.Logger, *zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zapConfig := zap.NewProductionConfig()
	if cfg.PrettyLogs {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.InitialFields = map[string]any{"app": cfg.AppName}

	base, err := zapConfig.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return FromZap(base), base, nil
}

// FromZap returns an ectologger.Logger that writes every message to base.
func FromZap(base *zap.Logger) ectologger.Logger {
	return ectologger.NewEctoLogger(func(msg ectologger.EctoLogMessage) {
		write(base, msg)
	})
}

func write(base *zap.Logger, msg ectologger.EctoLogMessage) {
	entry := fields(msg)

	message, _ := pop(entry, "message", "msg").(string)
	level := levelOf(pop(entry, "level", "lvl"))

	zapFields := make([]zap.Field, 0, len(entry))
	for key, value := range entry {
		zapFields = append(zapFields, zap.Any(key, value))
	}

	if ce := base.Check(level, message); ce != nil {
		ce.Write(zapFields...)
	}
}

// fields flattens a log message into its JSON object form.
func fields(msg ectologger.EctoLogMessage) map[string]any {
	raw, err := json.Marshal(msg)
	if err != nil {
		return map[string]any{"message": fmt.Sprint(msg)}
	}

	entry := map[string]any{}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return map[string]any{"message": string(raw)}
	}
	return entry
}

// pop removes and returns the first key present, ignoring case.
func pop(entry map[string]any, keys ...string) any {
	for key, value := range entry {
		for _, want := range keys {
			if strings.EqualFold(key, want) {
				delete(entry, key)
				return value
			}
		}
	}
	return nil
}

func levelOf(raw any) zapcore.Level {
	name, ok := raw.(string)
	if !ok {
		return zapcore.InfoLevel
	}

	switch strings.ToLower(name) {
	case "warning":
		return zapcore.WarnLevel
	case "fatal", "panic":
		// ectologger never exits the process
		return zapcore.ErrorLevel
	}

	level, err := zapcore.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}
