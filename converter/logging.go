package main

import (
	"fmt"
	"io"
	"os"
)

const (
	levelError = iota
	levelWarning
	levelInfo
	levelDebug
)

var (
	verbosityLevel           = levelInfo // by default show info messages and errors
	logOutput      io.Writer = os.Stderr
)

func printMessage(format string, requestedLevel int, v ...interface{}) {
	if verbosityLevel < requestedLevel {
		return
	}

	msg := fmt.Sprintf(format, v...)
	_, _ = fmt.Fprint(logOutput, "mapconv: ", msg, "\n")
}

func debug(format string, v ...interface{}) {
	printMessage(format, levelDebug, v...)
}

func info(format string, v ...interface{}) {
	printMessage(format, levelInfo, v...)
}

func warning(format string, v ...interface{}) {
	printMessage(format, levelWarning, v...)
}

// this is for critical error messages, call this function 'severe' to avoid name clashing with error class
func severe(format string, v ...interface{}) {
	printMessage(format, levelError, v...)
}
