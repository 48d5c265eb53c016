package utils

import (
	"os"
	"runtime/debug"

	"github.com/nimp-build/nimp/locale"
	"github.com/sirupsen/logrus"
)

// PrintPanic reports a crash in a form that can be pasted in an issue.
func PrintPanic(err error) {
	logrus.Errorf(locale.Loc("fatal_error", nil))
	println("")
	println("--COPY FROM HERE--")
	logrus.Infof("Version: %s", Version)
	logrus.Infof("Cmdline: %s", os.Args)
	logrus.Errorf("Error: %s", err)
	println("stacktrace from panic: \n" + string(debug.Stack()))
	println("--END COPY HERE--")
	println("")
	println(locale.Loc("report_issue", nil))
}
