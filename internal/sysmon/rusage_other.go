//go:build !unix

package sysmon

import (
	"errors"
	"time"
)

// ProcessCPUTime is not available on this platform.
func ProcessCPUTime() (time.Duration, error) {
	return 0, errors.ErrUnsupported
}
