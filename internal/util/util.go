// Package util holds small formatting helpers shared by the server and the CLI.
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ETag returns a strong entity tag for a response body.
func ETag(data []byte) string {
	sum := sha256.Sum256(data)

	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}

// FormatDuration formats duration into human readable format (e.g., "6d23h", "1h30m", "5m10s", "45s").
// Negative durations render as "expired".
func FormatDuration(duration time.Duration) string {
	if duration < 0 {
		return "expired"
	}
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	if h >= 24 {
		return fmt.Sprintf("%dd%dh", h/24, h%24)
	}
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}
