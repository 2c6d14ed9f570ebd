package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

type Level logging.Level

// Verbosity levels accepted by SetLevel.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level:.4s}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

// Logger is the leveled logger used across the engine packages.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns a logger tagged with the given module name.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all engine log output to sink. The current level is kept.
func SetSink(sink io.Writer) {
	level := logging.NOTICE
	if leveledBackend != nil {
		level = leveledBackend.GetLevel("")
	}
	backend := logging.NewLogBackend(sink, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(formatted)
	leveledBackend.SetLevel(level, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity for every module.
func SetLevel(level Level) {
	var lvl logging.Level

	switch level {
	case Debug:
		lvl = logging.DEBUG
	case Info:
		lvl = logging.INFO
	case Notice:
		lvl = logging.NOTICE
	case Warning:
		lvl = logging.WARNING
	case Error:
		lvl = logging.ERROR
	}

	leveledBackend.SetLevel(lvl, "")
}

// LevelFromFlags maps the usual -vv / -v / -q command line switches to a level.
func LevelFromFlags(vv, v, q bool) Level {
	switch {
	case vv:
		return Debug
	case v:
		return Info
	case q:
		return Error
	default:
		return Notice
	}
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
