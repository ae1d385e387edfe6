// Package logger exposes the shared logger used across the application.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Log is the process-wide logger. Output goes to stderr so that listing
// output on stdout stays machine-consumable.
var Log = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})
