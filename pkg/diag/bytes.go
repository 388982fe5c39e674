package diag

import "fmt"

// FormatBytes renders n using IEC binary units (KiB/MiB/...), in the
// style of the teacher repo's progress.formatSize and
// NVIDIA-aistore's cmn/cos size formatter.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
