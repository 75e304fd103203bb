package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"regexp"

	"github.com/mgutz/ansi"
)

const calldepth = 3

var (
	Silent           bool
	Verbose          bool
	Color            bool
	stdOutLogger     = log.New(os.Stdout, "", 0)
	stdOutWarnLogger = log.New(os.Stdout, "WARNING: ", 0)
	stdErrLogger     = log.New(os.Stderr, "ERROR: ", 0)
)

var trailingSpace = regexp.MustCompile(`\s*$`)

// SetOutput redirects the stdout and stderr loggers. Used by tests.
func SetOutput(stdout, stderr io.Writer) {
	stdOutLogger.SetOutput(stdout)
	stdOutWarnLogger.SetOutput(stdout)
	stdErrLogger.SetOutput(stderr)
}

func Error(v ...interface{}) {
	Log(stdErrLogger, StyleError, v...)
}

func Errorf(format string, v ...interface{}) {
	Logf(stdErrLogger, StyleError, format, v...)
}

func Warn(v ...interface{}) {
	Log(stdOutWarnLogger, StyleWarn, v...)
}

func Warnf(format string, v ...interface{}) {
	Logf(stdOutWarnLogger, StyleWarn, format, v...)
}

func Heading(v ...interface{}) {
	if !Silent {
		Log(stdOutLogger, StyleHeading, v...)
	}
}

func Headingf(format string, v ...interface{}) {
	if !Silent {
		Logf(stdOutLogger, StyleHeading, format, v...)
	}
}

func Info(v ...interface{}) {
	if !Silent {
		Log(stdOutLogger, StyleInfo, v...)
	}
}

func Infof(format string, v ...interface{}) {
	if !Silent {
		Logf(stdOutLogger, StyleInfo, format, v...)
	}
}

func Debug(v ...interface{}) {
	if Verbose && !Silent {
		Log(stdOutLogger, StyleDebug, v...)
	}
}

func Debugf(format string, v ...interface{}) {
	if Verbose && !Silent {
		Logf(stdOutLogger, StyleDebug, format, v...)
	}
}

func Log(l *log.Logger, style string, v ...interface{}) {
	msg := fmt.Sprint(v...)
	if Color {
		msg = colorizeMessage(style, msg)
	}
	l.Output(calldepth, msg)
}

func Logf(l *log.Logger, style, format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	if Color {
		msg = colorizeMessage(style, msg)
	}
	l.Output(calldepth, msg)
}

// Colorize wraps s in the given style, leaving trailing whitespace outside the escape codes.
func Colorize(style, s string) string {
	return colorizeMessage(style, s)
}

func colorizeMessage(style, s string) string {
	trimmed := trailingSpace.ReplaceAllString(s, "")
	trailing := trailingSpace.FindString(s)

	return ansi.Color(trimmed, style) + trailing
}
