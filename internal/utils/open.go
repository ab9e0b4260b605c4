package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenDirectory reveals a directory in the platform file manager.
func OpenDirectory(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open directory %s: %w", path, err)
	}
	// Detach; the file manager owns its own lifetime.
	go func() { _ = cmd.Wait() }()
	return nil
}
