package utils

import "fmt"

// FormatDuration renders a duration in whole seconds as "1h 2m 3s", dropping
// the hour part when it is zero.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	m, s := seconds/60, seconds%60
	h, m := m/60, m%60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}
