// Copyright 2025 The Helios Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"time"

	"github.com/sirupsen/logrus"
)

// LogrusEmitter forwards log statements to a logrus logger. Level
// filtering is performed by BasicLogger before Emit is called, so the
// underlying logrus logger is expected to pass everything through.
type LogrusEmitter struct {
	Logger *logrus.Logger
}

// Emit implements Emitter.Emit.
func (e LogrusEmitter) Emit(depth int, level Level, timestamp time.Time, format string, v ...any) {
	entry := e.Logger.WithTime(timestamp)
	switch level {
	case Warning:
		entry.Warningf(format, v...)
	case Info:
		entry.Infof(format, v...)
	case Debug:
		entry.Debugf(format, v...)
	}
}

// logrusEmitter is the zero-configuration default: the logrus standard
// logger, opened up so that our own Level does the filtering.
type logrusEmitter struct{}

// Emit implements Emitter.Emit.
func (logrusEmitter) Emit(depth int, level Level, timestamp time.Time, format string, v ...any) {
	std := logrus.StandardLogger()
	std.SetLevel(logrus.DebugLevel)
	LogrusEmitter{Logger: std}.Emit(depth+1, level, timestamp, format, v...)
}
