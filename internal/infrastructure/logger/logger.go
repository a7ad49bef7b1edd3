package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"webpilot/internal/application/port/output"
)

// LogFilePath is the fixed execution log location, relative to the working
// directory. Entries are appended across runs.
const LogFilePath = "browser_agent.log"

var _ output.LoggerPort = (*ZapLogger)(nil)

type ZapLogger struct {
	logger *zap.SugaredLogger
	file   *os.File
}

// New builds the process logger: a JSON core appending to LogFilePath and,
// when verbose, a console core mirroring everything to stdout.
func New(level string, verbose bool) (*ZapLogger, error) {
	zapLevel := parseLevel(level)
	if verbose {
		zapLevel = zapcore.DebugLevel
	}

	file, err := os.OpenFile(LogFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	fileEncoderCfg := zap.NewProductionEncoderConfig()
	fileEncoderCfg.TimeKey = "timestamp"
	fileEncoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderCfg), zapcore.AddSync(file), zapLevel),
	}

	if verbose {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(os.Stdout), zapLevel))
	}

	z := zap.New(zapcore.NewTee(cores...))

	return &ZapLogger{
		logger: z.Sugar(),
		file:   file,
	}, nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *ZapLogger) Debug(msg string, args ...any) { l.logger.Debugw(msg, args...) }
func (l *ZapLogger) Info(msg string, args ...any)  { l.logger.Infow(msg, args...) }
func (l *ZapLogger) Warn(msg string, args ...any)  { l.logger.Warnw(msg, args...) }
func (l *ZapLogger) Error(msg string, args ...any) { l.logger.Errorw(msg, args...) }

func (l *ZapLogger) WithField(key string, value any) output.LoggerPort {
	return &ZapLogger{
		logger: l.logger.With(key, value),
		file:   l.file,
	}
}

func (l *ZapLogger) Close() error {
	_ = l.logger.Sync()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
