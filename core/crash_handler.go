package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// cleanup runs before the crash report is printed, typically restoring the terminal
var cleanup atomic.Pointer[func()]

// SetCrashCleanup registers the hook HandleCrash runs first, nil clears it
func SetCrashCleanup(fn func()) {
	if fn == nil {
		cleanup.Store(nil)
		return
	}
	cleanup.Store(&fn)
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if fn := cleanup.Load(); fn != nil {
		(*fn)()
	}

	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
