package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// BytesPerGiB is the number of bytes in one gibibyte.
const BytesPerGiB = 1024 * 1024 * 1024

var sizeSuffixes = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// HumanSize formats a byte count using binary scaling and the suffixes
// B, KB, MB, GB, TB and PB. Scaling stops at PB. The value is printed with at
// most two decimals and without trailing zeros, e.g. "5 GB", "1.5 KB".
func HumanSize(nbytes int64) string {
	value := float64(nbytes)
	i := 0
	for value >= 1024 && i < len(sizeSuffixes)-1 {
		value /= 1024
		i++
	}

	f := strconv.FormatFloat(value, 'f', 2, 64)
	f = strings.TrimRight(f, "0")
	f = strings.TrimSuffix(f, ".")
	return f + " " + sizeSuffixes[i]
}

// FormatPlaytime renders minutes as "HH:MM". Hours are zero-padded to two
// digits and never roll over into days.
func FormatPlaytime(minutes int64) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
