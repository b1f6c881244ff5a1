package main

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogger configures the standard logrus logger. With a log file the
// entries also go to a rotated file next to the console.
func setupLogger(debug bool, logFile string) io.Closer {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	if logFile == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil)
	}
	w := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    32, // MB
		MaxBackups: 3,
		MaxAge:     28,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, w))
	return w
}
