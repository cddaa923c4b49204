package study

import "fmt"

// FormatTime renders a second offset as "m:ss". There is deliberately no
// hours component: source videos are assumed to run under 60 minutes, so
// 3661 renders as "61:01". Negative inputs clamp to zero.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
