package mandel

import "fmt"

// Band is a half-open row range [First, Last) owned by one worker.
type Band struct {
	First int
	Last  int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int { return b.Last - b.First }

func (b Band) String() string {
	return fmt.Sprintf("rows [%d,%d)", b.First, b.Last)
}

// WorkerCount picks the divisor of height closest to target.
//
// The scan walks outward from target up to target steps, trying the lower
// candidate first. When nothing is found every row gets its own worker.
func WorkerCount(height, target int) int {
	if height <= 0 {
		return 0
	}
	if target > height {
		target = height
	}
	for d := 0; d <= target; d++ {
		if lo := target - d; lo >= 1 && height%lo == 0 {
			return lo
		}
		if hi := target + d; hi >= 1 && hi <= height && height%hi == 0 {
			return hi
		}
	}
	return height
}

// Partition splits [0, height) into equal bands, one per worker.
func Partition(height, target int) []Band {
	workers := WorkerCount(height, target)
	if workers == 0 {
		return nil
	}
	rows := height / workers
	bands := make([]Band, workers)
	for i := range bands {
		bands[i] = Band{First: i * rows, Last: (i + 1) * rows}
	}
	return bands
}
