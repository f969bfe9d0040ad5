package util

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/sidkik/notion-mirror/pkg/errors"
)

// HandleFatalError prints the user-facing version of the error and exits
// with a non-zero status.
func HandleFatalError(err error) {
	fmt.Fprintln(os.Stderr, errors.GetPrintableMessage(err))
	os.Exit(1)
}

// HandlePanic converts a panic anywhere in the process into a logged crash
// with a non-zero exit, rather than a bare stack trace.
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	log.WithFields(log.Fields{
		"panic": r,
		"stack": string(debug.Stack()),
	}).Error("notion-mirror crashed due to an unexpected error")
	os.Exit(1)
}
