package ttlog

import (
	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerOpts describes the logger options.
type LoggerOpts struct {
	// Filename is the name of log file.
	Filename string
	// MaxSize is the maximum size in megabytes of the log file
	// before it gets rotated.
	MaxSize int
	// MaxBackups is the maximum number of old log files to retain.
	MaxBackups int
	// MaxAge is the maximum number of days to retain old log files
	// based on the timestamp encoded in their filename.
	MaxAge int
}

// Logger is an apex/log handler writing JSON records to a rotated log file.
type Logger struct {
	log.Handler
	// ljLogger rotates the log file when it grows over MaxSize.
	ljLogger *lumberjack.Logger
}

// NewLogger creates a new object of Logger.
func NewLogger(opts *LoggerOpts) *Logger {
	ljLogger := &lumberjack.Logger{
		Filename:   opts.Filename,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAge,
		Compress:   false,
		LocalTime:  true,
	}
	return &Logger{Handler: json.New(ljLogger), ljLogger: ljLogger}
}

// Close closes the log file.
func (logger *Logger) Close() error {
	return logger.ljLogger.Close()
}

// Setup installs console as the handler of the default apex logger. If opts
// names a log file, records are duplicated to it and the file logger is
// returned, so the caller can close it. Nil is returned otherwise.
func Setup(console log.Handler, opts *LoggerOpts) *Logger {
	if opts == nil || opts.Filename == "" {
		log.SetHandler(console)
		return nil
	}
	fileLogger := NewLogger(opts)
	log.SetHandler(multi.New(console, fileLogger))
	return fileLogger
}
