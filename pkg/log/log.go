package log

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Verbose is set by the CLI flag to enable debug logging
var Verbose bool

// NoColor is set by the CLI flag to disable ANSI colors in log output
var NoColor bool

// LogWriter can be overwritten by tests to suppress log output. Logs go to
// stderr so that command output on stdout stays clean for scripting.
var LogWriter io.Writer = os.Stderr

var infoLogger, warningLogger, errorLogger, debugLogger *logger

const (
	boldColor    = "\033[1m%s\033[0m"
	infoColor    = "\033[0;34m%s\033[0m"
	noticeColor  = "\033[0;36m%s\033[0m"
	warningColor = "\033[0;33m%s\033[0m"
	errorColor   = "\033[0;31m%s\033[0m"
	debugColor   = "\033[0;36m%s\033[0m"
)

func init() {
	infoLogger = &logger{"INFO", infoColor}
	warningLogger = &logger{"WARNING", warningColor}
	errorLogger = &logger{"ERROR", errorColor}
	debugLogger = &logger{"DEBUG", debugColor}
}

type logger struct {
	prefix, color string
}

func colorize(color, s string) string {
	if NoColor {
		return s
	}
	return fmt.Sprintf(color, s)
}

const timeFormat = "2006/01/02 15:04:05"

func (l *logger) seedLine() string {
	return colorize(noticeColor, time.Now().Local().Format(timeFormat)) + "  " +
		colorize(l.color, fmt.Sprintf("[%s]", l.prefix)) + "\t"
}

func (l *logger) write(line string) {
	// one write per line keeps output from concurrent tailers readable
	fmt.Fprint(LogWriter, l.seedLine()+colorize(boldColor, strings.TrimRight(line, "\n"))+"\n")
}

func (l *logger) Println(args ...interface{}) { l.write(fmt.Sprintln(args...)) }

func (l *logger) Printf(fstr string, args ...interface{}) { l.write(fmt.Sprintf(fstr, args...)) }

// Info is the equivalent of a log.Println on the info logger.
func Info(args ...interface{}) {
	infoLogger.Println(args...)
}

// Infof is the equivalent of a log.Printf on the info logger.
func Infof(fstr string, args ...interface{}) {
	infoLogger.Printf(fstr, args...)
}

// Warning is the equivalent of a log.Println on the warning logger.
func Warning(args ...interface{}) {
	warningLogger.Println(args...)
}

// Warningf is the equivalent of a log.Printf on the warning logger.
func Warningf(fstr string, args ...interface{}) {
	warningLogger.Printf(fstr, args...)
}

// Error is the equivalent of a log.Println on the error logger.
func Error(args ...interface{}) {
	errorLogger.Println(args...)
}

// Errorf is the equivalent of a log.Printf on the error logger.
func Errorf(fstr string, args ...interface{}) {
	errorLogger.Printf(fstr, args...)
}

// Fatal logs to the error logger and exits the process.
func Fatal(args ...interface{}) {
	errorLogger.Println(args...)
	os.Exit(1)
}

// Debug is the equivalent of a log.Println on the debug logger.
func Debug(args ...interface{}) {
	if Verbose {
		debugLogger.Println(args...)
	}
}

// Debugf is the equivalent of a log.Printf on the debug logger.
func Debugf(fstr string, args ...interface{}) {
	if Verbose {
		debugLogger.Printf(fstr, args...)
	}
}

// DebugReader is a convenience method for tailing the contents of a reader
// to the debug logger.
func DebugReader(rdr io.Reader) {
	scanner := bufio.NewScanner(rdr)
	for scanner.Scan() {
		Debug(strings.TrimSpace(scanner.Text()))
	}
}
