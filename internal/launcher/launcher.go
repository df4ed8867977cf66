// Package launcher opens application bundles through the OS.
package launcher

import (
	"os/exec"
)

// openCommand is the macOS document-open mechanism.
const openCommand = "open"

// Open launches the bundle at path, fire-and-forget. The spawned process is
// detached and never waited on; spawn failures are swallowed.
func Open(path string) {
	_ = open(path)
}

// open starts the command and releases the process so nothing holds a
// handle to it. Kept separate from Open so tests can observe the error.
func open(path string) error {
	cmd := exec.Command(openCommand, path)
	if err := cmd.Start(); err != nil {
		return err
	}
	if cmd.Process != nil {
		return cmd.Process.Release()
	}
	return nil
}
