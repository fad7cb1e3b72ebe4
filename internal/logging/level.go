/*
 * MIT License
 *
 * Copyright (c) 2026 go-reactor contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is a uint8 log level, modeled on nabbar/golib/logger.Level but
// extended with TraceLevel and a None name so the seven names
// spec.md §6 requires for LOGGER_LEVEL all exist.
type Level uint8

const (
	// NoneLevel disables logging entirely for a given logger.
	NoneLevel Level = iota
	CriticalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

func (l Level) String() string {
	switch l {
	case NoneLevel:
		return "NONE"
	case CriticalLevel:
		return "CRITICAL"
	case ErrorLevel:
		return "ERROR"
	case WarnLevel:
		return "WARNING"
	case InfoLevel:
		return "INFO"
	case DebugLevel:
		return "DEBUG"
	case TraceLevel:
		return "TRACE"
	default:
		return "INFO"
	}
}

// Logrus converts a Level to its logrus equivalent. NoneLevel maps to a
// level above Trace so nothing is ever emitted (logrus has no "off" level).
func (l Level) Logrus() logrus.Level {
	switch l {
	case CriticalLevel:
		return logrus.FatalLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case WarnLevel:
		return logrus.WarnLevel
	case InfoLevel:
		return logrus.InfoLevel
	case DebugLevel:
		return logrus.DebugLevel
	case TraceLevel:
		return logrus.TraceLevel
	default:
		return logrus.PanicLevel
	}
}

// ParseLevel returns the Level matching name, case-insensitively. An
// unrecognized name yields InfoLevel, matching the teacher's
// GetLevelString fallback behavior.
func ParseLevel(name string) Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NONE", "":
		return NoneLevel
	case "CRITICAL":
		return CriticalLevel
	case "ERROR":
		return ErrorLevel
	case "WARNING", "WARN":
		return WarnLevel
	case "INFO":
		return InfoLevel
	case "DEBUG":
		return DebugLevel
	case "TRACE":
		return TraceLevel
	default:
		return InfoLevel
	}
}

// LevelFromEnv resolves the level for a named logger following spec.md §6:
// LOGGER_LEVEL_<NAME> overrides LOGGER_LEVEL, which overrides def.
func LevelFromEnv(name string, def Level) Level {
	if v, ok := os.LookupEnv("LOGGER_LEVEL_" + strings.ToUpper(name)); ok {
		return ParseLevel(v)
	}
	if v, ok := os.LookupEnv("LOGGER_LEVEL"); ok {
		return ParseLevel(v)
	}
	return def
}
