package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Types int

const (
	Info Types = iota
	Error
	Warn
	Fatal
)

type Message struct {
	Timestamp time.Time
	Tag       string
	Message   string
	LogTypes  Types
}

// Logger is a tagged handle onto the shared log sink. Every Logger created by
// NewLogger writes to the same console and file.
type Logger struct {
	tag  string
	sink *sink
}

type sink struct {
	mu      sync.RWMutex
	view    io.Writer
	dev     bool
	logFile *os.File
	logChan chan Message
	done    chan struct{}
	closed  bool
}

var (
	logManager *sink
	once       sync.Once
)

// InitLogger sets up the shared sink. view receives colored lines in dev mode
// (a *tview.TextView in the terminal UI) and may be nil.
func InitLogger(dev bool, logPath string, view io.Writer) error {
	var initErr error
	once.Do(func() {
		s := &sink{
			view:    view,
			dev:     dev,
			logChan: make(chan Message, 100),
			done:    make(chan struct{}),
		}
		if logPath != "" {
			timestamp := time.Now().Format("20060102_150405")
			fileName := fmt.Sprintf("nopickles_log_%s.log", timestamp)
			filePath := filepath.Join(logPath, fileName)

			file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				initErr = fmt.Errorf("open log file: %w", err)
				return
			}
			s.logFile = file
			go s.processLogs()
		} else {
			close(s.done)
		}
		logManager = s
	})
	return initErr
}

// SetDev toggles dev output at runtime.
func SetDev(dev bool) {
	if logManager == nil {
		return
	}
	logManager.mu.Lock()
	logManager.dev = dev
	logManager.mu.Unlock()
}

// NewLogger returns a logger for tag. Before InitLogger it returns a silent logger.
func NewLogger(tag string) *Logger {
	return &Logger{tag: tag, sink: logManager}
}

func (s *sink) processLogs() {
	defer close(s.done)
	for msg := range s.logChan {
		timestamp := msg.Timestamp.Format("2006-01-02 15:04:05")
		logMessage := fmt.Sprintf("%s [%s] %s: %s\n", timestamp, msg.Tag, msg.LogTypes.toString(), msg.Message)
		if _, err := s.logFile.WriteString(logMessage); err != nil {
			log.Println("logger: write failed:", err)
		}
	}
}

func (l *Logger) log(logTypes Types, v ...interface{}) {
	if l == nil || l.sink == nil {
		if logTypes == Fatal {
			log.Println(v...)
		}
		return
	}
	s := l.sink
	message := fmt.Sprint(v...)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.dev {
		if s.view != nil {
			var format string
			switch logTypes {
			case Info:
				format = "[green]DEBUG (%s): %s[-]\n"
			case Error, Fatal:
				format = "[red]DEBUG (%s): %s[-]\n"
			case Warn:
				format = "[yellow]DEBUG (%s): %s[-]\n"
			}
			fmt.Fprintf(s.view, format, l.tag, message)
		} else {
			log.Printf("[%s] %s: %s", l.tag, logTypes.toString(), message)
		}
	}

	if s.logFile != nil && !s.closed {
		s.logChan <- Message{
			Timestamp: time.Now(),
			Tag:       l.tag,
			Message:   message,
			LogTypes:  logTypes,
		}
	}
}

func (l *Logger) Info(v ...interface{}) {
	l.log(Info, v...)
}

func (l *Logger) Error(v ...interface{}) {
	l.log(Error, v...)
}

func (l *Logger) Warn(v ...interface{}) {
	l.log(Warn, v...)
}

func (l *Logger) Fatal(v ...interface{}) {
	l.log(Fatal, v...)
	Close()
	os.Exit(1)
}

// Close flushes pending lines to the log file and closes it. Safe to call twice.
func Close() {
	s := logManager
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.logFile != nil {
		close(s.logChan)
	}
	s.mu.Unlock()

	<-s.done
	if s.logFile != nil {
		s.logFile.Close()
	}
}

func (t Types) toString() string {
	switch t {
	case Info:
		return "INFO"
	case Error:
		return "ERROR"
	case Warn:
		return "WARN"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}
