// Package logger provides the wallet's loud, plaintext diagnostic log.
package logger

import (
	"log"
	"os"
)

var (
	InfoLogger  *log.Logger
	WarnLogger  *log.Logger
	ErrorLogger *log.Logger
	logFile     *os.File
)

// Init initializes the loggers and creates/opens the log file.
func Init(logFilePath string) error {
	var err error
	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	InfoLogger = log.New(logFile, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLogger = log.New(logFile, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(logFile, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	return nil
}

// Cleanup closes the log file when the application is done using it.
func Cleanup() {
	if logFile != nil {
		logFile.Close()
	}
}

// Info logs an informational message.
func Info(v ...interface{}) {
	if InfoLogger == nil {
		log.Println(v...)
		return
	}
	InfoLogger.Println(v...)
}

// Warn logs a warning that does not abort the current operation, e.g. the
// recovery-log write failure described in spec.md §7 kind 2.
func Warn(v ...interface{}) {
	if WarnLogger == nil {
		log.Println(v...)
		return
	}
	WarnLogger.Println(v...)
}

// Error logs an error message.
func Error(v ...interface{}) {
	if ErrorLogger == nil {
		log.Println(v...)
		return
	}
	ErrorLogger.Println(v...)
}
