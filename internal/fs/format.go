package fs

import (
	"fmt"
	"time"
)

// sizeLimit is the largest value that still renders below "1024.0" in a
// unit; shifting it right by 10 per step gives the boundary of each smaller
// unit.
const sizeLimit int64 = 0xfffcccccccccccc

// FormatSize renders a byte count with binary thresholds and one decimal,
// e.g. 1536 -> "1.5 kB". Negative sizes are unknown and render as "N/A".
func FormatSize(size int64) string {
	switch {
	case size < 0:
		return "N/A"
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size <= sizeLimit>>40:
		return fmt.Sprintf("%.1f kB", float64(size)/(1<<10))
	case size <= sizeLimit>>30:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size <= sizeLimit>>20:
		return fmt.Sprintf("%.1f GB", float64(size)/(1<<30))
	case size <= sizeLimit>>10:
		return fmt.Sprintf("%.1f TB", float64(size)/(1<<40))
	case size <= sizeLimit:
		return fmt.Sprintf("%.1f PB", float64(size>>10)/(1<<40))
	default:
		return fmt.Sprintf("%.1f EB", float64(size>>20)/(1<<40))
	}
}

// FormatAttributes renders attributes for display next to an entry.
func FormatAttributes(a Attributes) string {
	return fmt.Sprintf("Created: %s | Modified: %s | Size: %s",
		formatTime(a.Created), formatTime(a.Modified), FormatSize(a.Size))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format(time.RFC3339Nano)
}
