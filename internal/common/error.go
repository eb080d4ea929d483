package common

import "fmt"

var (
	ErrContentRootNotFound = fmt.Errorf("workshop content root not found")
	ErrPackageAbsent       = fmt.Errorf("package file absent")
	ErrShortcutUnsupported = fmt.Errorf("shortcut artifacts unsupported on this platform")
	ErrRunAlreadyStarted   = fmt.Errorf("translation run has already started")
)
