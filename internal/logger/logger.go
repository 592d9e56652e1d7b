package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ********************************************************
// ********* LOGGING **************************************
// ********************************************************

var showDateTime bool
var defaultLogger *Logger
var logFile *os.File

// DefaultLogFile is where SetLogOutput writes when asked for file output
var DefaultLogFile = "/tmp/gcode2bmp.log"

type LogLevel int

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorOrange  = "\033[38;5;208m"
)

const (
	DEBUG LogLevel = iota
	INFO
	INFORM
	HIGHLIGHT
	WARN
	ERROR
	FATAL
)

// Logger writes diagnostics below ERROR to the info writer and the rest
// to the error writer
type Logger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	level       LogLevel
	color       bool
}

func init() {
	defaultLogger = NewLogger(INFO)
	showDateTime = false
}

func flags() int {
	if showDateTime {
		return log.Ldate | log.Ltime
	}
	return 0
}

func SetShowDateTime(value bool) {
	showDateTime = value
	defaultLogger.infoLogger.SetFlags(flags())
	defaultLogger.errorLogger.SetFlags(flags())
}

// SetLevel drops every message below the given level
func SetLevel(level LogLevel) {
	defaultLogger.level = level
}

// GetLevel returns the level of the default logger
func GetLevel() LogLevel {
	return defaultLogger.level
}

// SetColor turns ANSI coloring of messages on or off
func SetColor(enabled bool) {
	defaultLogger.color = enabled
}

// SetWriters redirects the default logger. Tests use this to capture
// the diagnostic stream.
func SetWriters(info, errs io.Writer) {
	defaultLogger.infoLogger = log.New(info, "", flags())
	defaultLogger.errorLogger = log.New(errs, "", flags())
}

// SetLogOutput sets the output destination for logs
// 'c' for console, 'f' for file, 'b' for both
func SetLogOutput(outputType rune) error {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	var infoWriter, errorWriter io.Writer

	switch outputType {
	case 'c':
		infoWriter = os.Stdout
		errorWriter = os.Stderr
	case 'f', 'b':
		var err error
		logFile, err = os.OpenFile(DefaultLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", DefaultLogFile, err)
		}
		if outputType == 'f' {
			infoWriter = logFile
			errorWriter = logFile
		} else {
			infoWriter = io.MultiWriter(os.Stdout, logFile)
			errorWriter = io.MultiWriter(os.Stderr, logFile)
		}
	default:
		return fmt.Errorf("invalid log output type: %c", outputType)
	}

	SetWriters(infoWriter, errorWriter)
	return nil
}

// Close releases the log file opened by SetLogOutput, if any
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func NewLogger(level LogLevel) *Logger {
	return &Logger{
		infoLogger:  log.New(os.Stdout, "", flags()),
		errorLogger: log.New(os.Stderr, "", flags()),
		level:       level,
		color:       true,
	}
}

func (l *Logger) log(level LogLevel, format string, v ...any) {
	if level < l.level {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "unknown"
		line = 0
	}
	file = filepath.Base(file)

	msg := fmt.Sprintf(format, v...)

	colorCode, reset := level.color(), colorReset
	if !l.color {
		colorCode, reset = "", ""
	}

	logMsg := fmt.Sprintf("[%s] %s:%d: %s%s%s", level.String(), file, line, colorCode, msg, reset)
	if level >= ERROR {
		l.errorLogger.Println(logMsg)
	} else {
		l.infoLogger.Println(logMsg)
	}
}

func (l LogLevel) color() string {
	switch l {
	case DEBUG:
		return colorBlue
	case INFO:
		return colorGreen
	case INFORM:
		return colorMagenta
	case HIGHLIGHT:
		return colorCyan
	case WARN:
		return colorYellow
	case ERROR:
		return colorOrange
	case FATAL:
		return colorRed
	default:
		return colorReset
	}
}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case INFORM:
		return "INFORM"
	case HIGHLIGHT:
		return "HIGHLIGHT"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name such as "debug" or "WARN" to its LogLevel
func ParseLevel(name string) (LogLevel, error) {
	for l := DEBUG; l <= FATAL; l++ {
		if strings.EqualFold(name, l.String()) {
			return l, nil
		}
	}
	return INFO, fmt.Errorf("unknown log level %q", name)
}

// Convenience methods using the default logger. All of them take a
// printf style format.
func Debug(format string, v ...any) {
	defaultLogger.log(DEBUG, format, v...)
}

func Info(format string, v ...any) {
	defaultLogger.log(INFO, format, v...)
}

func Inform(format string, v ...any) {
	defaultLogger.log(INFORM, format, v...)
}

func Highlight(format string, v ...any) {
	defaultLogger.log(HIGHLIGHT, format, v...)
}

func Warn(format string, v ...any) {
	defaultLogger.log(WARN, format, v...)
}

func Error(format string, v ...any) {
	defaultLogger.log(ERROR, format, v...)
}

func Fatal(format string, v ...any) {
	defaultLogger.log(FATAL, format, v...)
	os.Exit(1)
}
