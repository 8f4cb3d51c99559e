/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ortuman/canary/version"
)

const logChanBufferSize = 256

// singleton interface
var (
	inst        *Logger
	instMu      sync.RWMutex
	initialized uint32
)

// Logger object is used to log messages on behalf of the library.
type Logger struct {
	level     Level
	outWriter io.Writer
	f         *os.File
	recCh     chan record
	closeCh   chan struct{}
}

type record struct {
	level Level
	file  string
	line  int
	log   string
}

func newLogger(cfg *Config, outWriter io.Writer) (*Logger, error) {
	l := &Logger{
		level:     cfg.Level,
		outWriter: outWriter,
		recCh:     make(chan record, logChanBufferSize),
		closeCh:   make(chan struct{}),
	}
	if len(cfg.LogPath) > 0 {
		// create log file intermediate directories.
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), os.ModePerm); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogPath, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0666)
		if err != nil {
			return nil, err
		}
		l.f = f
	}
	go l.loop()
	return l, nil
}

// Initialize initializes the default log subsystem.
func Initialize(cfg *Config) {
	if atomic.CompareAndSwapUint32(&initialized, 0, 1) {
		instMu.Lock()
		l, err := newLogger(cfg, os.Stdout)
		if err != nil {
			instMu.Unlock()
			fmt.Fprintf(os.Stderr, "log: %v\n", err)
			return
		}
		inst = l
		instMu.Unlock()

		Infof("canary %v", version.ApplicationVersion)
	}
}

// Shutdown shuts down log subsystem flushing pending records.
func Shutdown() {
	if atomic.CompareAndSwapUint32(&initialized, 1, 0) {
		instMu.Lock()
		defer instMu.Unlock()

		close(inst.closeCh)
		inst = nil
	}
}

func instance() *Logger {
	instMu.RLock()
	defer instMu.RUnlock()
	return inst
}

// Debugf logs a 'debug' message.
func Debugf(format string, args ...interface{}) {
	if inst := instance(); inst != nil && inst.level <= DebugLevel {
		ci := getCallerInfo()
		inst.writeLog(ci.filename, ci.line, format, DebugLevel, args...)
	}
}

// Infof logs an 'info' message.
func Infof(format string, args ...interface{}) {
	if inst := instance(); inst != nil && inst.level <= InfoLevel {
		ci := getCallerInfo()
		inst.writeLog(ci.filename, ci.line, format, InfoLevel, args...)
	}
}

// Warnf logs a 'warning' message.
func Warnf(format string, args ...interface{}) {
	if inst := instance(); inst != nil && inst.level <= WarningLevel {
		ci := getCallerInfo()
		inst.writeLog(ci.filename, ci.line, format, WarningLevel, args...)
	}
}

// Errorf logs an 'error' message.
func Errorf(format string, args ...interface{}) {
	if inst := instance(); inst != nil && inst.level <= ErrorLevel {
		ci := getCallerInfo()
		inst.writeLog(ci.filename, ci.line, format, ErrorLevel, args...)
	}
}

// Error logs an 'error' value.
func Error(err error) {
	if inst := instance(); inst != nil && inst.level <= ErrorLevel {
		ci := getCallerInfo()
		inst.writeLog(ci.filename, ci.line, "%v", ErrorLevel, err)
	}
}

type callerInfo struct {
	filename string
	line     int
}

func getCallerInfo() callerInfo {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return callerInfo{filename: "???", line: 0}
	}
	return callerInfo{filename: filepath.Base(file), line: line}
}

func (l *Logger) writeLog(file string, line int, format string, level Level, args ...interface{}) {
	entry := record{
		level: level,
		file:  file,
		line:  line,
		log:   fmt.Sprintf(format, args...),
	}
	select {
	case l.recCh <- entry:
	default:
		break // avoid blocking...
	}
}

func (l *Logger) loop() {
	for {
		select {
		case rec := <-l.recCh:
			tm := time.Now().Format("2006-01-02 15:04:05")
			line := fmt.Sprintf("%s [%s] %s:%d - %s\n", tm, levelAbbreviation(rec.level), rec.file, rec.line, rec.log)

			if l.f != nil {
				l.f.WriteString(line)
			}
			io.WriteString(l.outWriter, line)

		case <-l.closeCh:
			if l.f != nil {
				l.f.Close()
			}
			return
		}
	}
}

func levelAbbreviation(level Level) string {
	switch level {
	case DebugLevel:
		return "DBG"
	case InfoLevel:
		return "INF"
	case WarningLevel:
		return "WRN"
	case ErrorLevel:
		return "ERR"
	}
	return "???"
}
