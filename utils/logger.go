package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop().Sugar()

// LogFileName returns the path of the log file for a level on a given day
func LogFileName(dir, level string, day time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s.log", level, day.Format("2006-01-02")))
}

// InitLogger initializes the loggers. Each level gets its own daily JSON file
// under logsDir, and info and above are mirrored to stdout.
func InitLogger(logsDir string) error {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %v", err)
	}

	today := time.Now()
	open := func(level string) (zapcore.WriteSyncer, error) {
		f, err := os.OpenFile(LogFileName(logsDir, level, today), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s log file: %v", level, err)
		}
		return zapcore.AddSync(f), nil
	}

	infoFile, err := open("info")
	if err != nil {
		return err
	}
	errorFile, err := open("error")
	if err != nil {
		return err
	}
	debugFile, err := open("debug")
	if err != nil {
		return err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileEnc := zapcore.NewJSONEncoder(encCfg)
	consoleEnc := zapcore.NewConsoleEncoder(encCfg)

	only := func(lvl zapcore.Level) zap.LevelEnablerFunc {
		return func(l zapcore.Level) bool { return l == lvl }
	}
	atLeast := func(lvl zapcore.Level) zap.LevelEnablerFunc {
		return func(l zapcore.Level) bool { return l >= lvl }
	}

	core := zapcore.NewTee(
		zapcore.NewCore(fileEnc, infoFile, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l == zapcore.InfoLevel || l == zapcore.WarnLevel
		})),
		zapcore.NewCore(fileEnc, errorFile, atLeast(zapcore.ErrorLevel)),
		zapcore.NewCore(fileEnc, debugFile, only(zapcore.DebugLevel)),
		zapcore.NewCore(consoleEnc, zapcore.Lock(os.Stdout), atLeast(zapcore.InfoLevel)),
	)

	logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
	return nil
}

// SyncLogger flushes buffered log entries
func SyncLogger() {
	_ = logger.Sync()
}

// LogInfo logs an informational message
func LogInfo(format string, v ...interface{}) {
	logger.Infof(format, v...)
}

// LogWarn logs a warning
func LogWarn(format string, v ...interface{}) {
	logger.Warnf(format, v...)
}

// LogError logs an error message
func LogError(format string, v ...interface{}) {
	logger.Errorf(format, v...)
}

// LogDebug logs a debug message
func LogDebug(format string, v ...interface{}) {
	logger.Debugf(format, v...)
}

// LogRequest logs HTTP request details
func LogRequest(method, path, ip, requestID string, status int, duration time.Duration) {
	logger.Infow("Request",
		"method", method,
		"path", path,
		"ip", ip,
		"request_id", requestID,
		"status", status,
		"duration", duration,
	)
}

// LogErrorWithStack logs an error with stack trace
func LogErrorWithStack(err error, stack []byte) {
	logger.Errorw(fmt.Sprintf("Error: %v", err), "stack", string(stack))
}
