package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// NormalizeError turns an invocation failure into a human-readable message:
// prefer text the failing process captured, then the error's own message,
// then a structured rendering, and as a last resort plain coercion.
func NormalizeError(err error) string {
	if err == nil {
		return ""
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		if msg := strings.TrimSpace(string(exitErr.Stderr)); msg != "" {
			return msg
		}
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}

	if data, jsonErr := json.Marshal(err); jsonErr == nil {
		if s := string(data); s != "{}" && s != "null" {
			return s
		}
	}

	return fmt.Sprintf("%v", err)
}
