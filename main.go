package main

import (
	"runtime"

	"github.com/Carmen-Shannon/polyview/cmd"
)

func init() {
	// GLFW must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	cmd.Execute()
}
