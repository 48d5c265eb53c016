package utils

import "errors"

// Version is set at link time.
var Version string

// Options are the global command line flags.
var Options struct {
	Debug      bool
	LogFile    string
	ConfigFile string
}

var ErrNoInput = errors.New("no input")
