/*
 * Copyright 2025 The TimeRoll Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger provides the leveled logging facade used across the module.
// The default implementation is backed by zap; callers can swap in their own
// Logger or discard output entirely.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level controls which messages a Logger emits.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	OFF
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case OFF:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// Logger is the printf-style logging interface the module logs through.
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	SetLevel(level Level)
}

// zapLogger adapts a zap.SugaredLogger to the Logger interface with a
// runtime-adjustable level.
type zapLogger struct {
	sugar *zap.SugaredLogger
	atom  zap.AtomicLevel
}

var _ Logger = (*zapLogger)(nil)

// NewLogger creates a zap-backed Logger writing to output at the given level.
func NewLogger(level Level, output io.Writer) Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	atom := zap.NewAtomicLevelAt(zapLevel(level))
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(output), atom)
	return &zapLogger{
		sugar: zap.New(core).Sugar(),
		atom:  atom,
	}
}

func zapLevel(l Level) zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		// OFF sits above every level zap can emit.
		return zapcore.FatalLevel + 1
	}
}

func (z *zapLogger) Debug(format string, v ...interface{}) {
	z.sugar.Debugf(format, v...)
}

func (z *zapLogger) Info(format string, v ...interface{}) {
	z.sugar.Infof(format, v...)
}

func (z *zapLogger) Warn(format string, v ...interface{}) {
	z.sugar.Warnf(format, v...)
}

func (z *zapLogger) Error(format string, v ...interface{}) {
	z.sugar.Errorf(format, v...)
}

func (z *zapLogger) SetLevel(level Level) {
	z.atom.SetLevel(zapLevel(level))
}

// discardLogger drops everything.
type discardLogger struct{}

var _ Logger = (*discardLogger)(nil)

// NewDiscardLogger returns a Logger that discards all output.
func NewDiscardLogger() Logger {
	return &discardLogger{}
}

func (d *discardLogger) Debug(format string, v ...interface{}) {}
func (d *discardLogger) Info(format string, v ...interface{})  {}
func (d *discardLogger) Warn(format string, v ...interface{})  {}
func (d *discardLogger) Error(format string, v ...interface{}) {}
func (d *discardLogger) SetLevel(level Level)                  {}

var defaultInstance Logger = NewLogger(INFO, os.Stdout)

// SetDefault replaces the package default logger.
func SetDefault(l Logger) {
	if l != nil {
		defaultInstance = l
	}
}

// GetDefault returns the package default logger.
func GetDefault() Logger {
	return defaultInstance
}

// Debug logs through the default logger.
func Debug(format string, v ...interface{}) {
	defaultInstance.Debug(format, v...)
}

// Info logs through the default logger.
func Info(format string, v ...interface{}) {
	defaultInstance.Info(format, v...)
}

// Warn logs through the default logger.
func Warn(format string, v ...interface{}) {
	defaultInstance.Warn(format, v...)
}

// Error logs through the default logger.
func Error(format string, v ...interface{}) {
	defaultInstance.Error(format, v...)
}
