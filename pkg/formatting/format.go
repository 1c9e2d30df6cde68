// Package formatting renders transfer statistics in a human readable form
package formatting

import (
	"fmt"
	"time"
)

var sizeUnits = [...]string{"B", "kB", "MB", "GB", "TB", "PB", "EB"}

// Sizeable is a number of bytes that can be printed in a human readable format
type Sizeable uint64

// String prints the Sizeable in a human readable format
func (s Sizeable) String() string {
	return Size(uint64(s))
}

// Size prints out size in a human-readable format (e.g. 10.00 MB)
func Size(size uint64) string {
	val, unit := float64(size), 0
	for val >= 1024 && unit < len(sizeUnits)-1 {
		val /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", val, sizeUnits[unit])
}

// Throughput prints the rate at which size bytes were moved within d (e.g. 1.50 MB/s)
func Throughput(size uint64, d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	return Size(uint64(float64(size)/d.Seconds())) + "/s"
}

// Duration prints d rounded to a precision matching its magnitude
func Duration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return d.Round(time.Second).String()
	case d >= time.Second:
		return d.Round(10 * time.Millisecond).String()
	}
	return d.Round(time.Millisecond).String()
}
