/*
Copyright © 2020 Marvin

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package logger

import (
	"os"
	"strings"
	"time"

	logger2 "gorm.io/gorm/logger"

	"moul.io/zapgorm2"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LogTimeFmt = "2006-01-02 15:04:05.000"
)

type Config struct {
	LogLevel   string `toml:"log-level" json:"log-level"`
	LogFile    string `toml:"log-file" json:"log-file"`
	MaxSize    int    `toml:"max-size" json:"max-size"`
	MaxDays    int    `toml:"max-days" json:"max-days"`
	MaxBackups int    `toml:"max-backups" json:"max-backups"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:   "info",
		MaxSize:    128,
		MaxDays:    7,
		MaxBackups: 30,
	}
}

// NewRootLogger builds the process logger and installs it as the zap global,
// every helper in this package logs through zap.L().
func NewRootLogger(cfg *Config) *zap.Logger {
	newCore := zapcore.NewCore(getEncoder(), getWriteSyncer(cfg), getLevelEnabler(cfg.LogLevel))
	l := zap.New(newCore, zap.AddCaller(), zap.AddCallerSkip(1))
	zap.ReplaceGlobals(l)
	return l
}

func GetRootLogger() *zap.Logger {
	return zap.L()
}

func GetGormLogger(logLevel string, slowThreshold uint64) zapgorm2.Logger {
	gormLogger := zapgorm2.New(GetRootLogger())
	gormLogger.SlowThreshold = time.Duration(slowThreshold) * time.Millisecond

	spaceLogLevel := strings.TrimSpace(logLevel)
	// reduce log
	if strings.EqualFold(spaceLogLevel, "info") || strings.EqualFold(spaceLogLevel, "warn") {
		gormLogger.LogLevel = logger2.Warn
	} else if strings.EqualFold(spaceLogLevel, "silent") {
		gormLogger.LogLevel = logger2.Silent
	} else if strings.EqualFold(spaceLogLevel, "error") {
		gormLogger.LogLevel = logger2.Error
	}
	gormLogger.IgnoreRecordNotFoundError = true
	gormLogger.LogMode(gormLogger.LogLevel)
	return gormLogger
}

func Debug(msg string, fields ...zap.Field) {
	zap.L().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	zap.L().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	zap.L().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	zap.L().Error(msg, fields...)
}

func Sync() error {
	return zap.L().Sync()
}

// getEncoder custom logger encoder
func getEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(
		zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller_line",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    cEncodeLevel,
			EncodeTime:     cEncodeTime,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   cEncodeCaller,
		})
}

// getWriteSyncer writes to a rotated file when log-file is set, otherwise stderr
func getWriteSyncer(cfg *Config) zapcore.WriteSyncer {
	if strings.EqualFold(cfg.LogFile, "") {
		return zapcore.Lock(os.Stderr)
	}
	lumberJackLogger := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxDays,
		MaxBackups: cfg.MaxBackups,
	}
	return zapcore.AddSync(lumberJackLogger)
}

// getLevelEnabler used for get custom log level
func getLevelEnabler(logLevel string) zapcore.Level {
	switch strings.ToUpper(logLevel) {
	case "INFO":
		return zapcore.InfoLevel
	case "WARN":
		return zapcore.WarnLevel
	case "FATAL":
		return zapcore.FatalLevel
	case "DEBUG":
		return zapcore.DebugLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "PANIC":
		return zapcore.PanicLevel
	case "DPANIC":
		return zapcore.DPanicLevel
	default:
		return zapcore.InfoLevel
	}
}

// cEncodeLevel custom log level display
func cEncodeLevel(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + level.CapitalString() + "]")
}

// cEncodeTime custom time format display
func cEncodeTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + t.Format(LogTimeFmt) + "]")
}

// cEncodeCaller custom line number display
func cEncodeCaller(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + caller.TrimmedPath() + "]")
}
