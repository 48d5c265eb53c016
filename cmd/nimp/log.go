package main

import (
	"os"

	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

func setupLogging(isDebug bool, logFile string) error {
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.InfoLevel)
	if isDebug {
		logrus.SetLevel(logrus.TraceLevel)
	}
	if logFile == "" {
		return nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	logrus.AddHook(lfshook.NewHook(f, &logrus.TextFormatter{
		DisableColors: true,
	}))
	return nil
}
