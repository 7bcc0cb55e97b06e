package mandel

import "testing"

func TestWorkerCount(t *testing.T) {
	tests := []struct {
		height, target int
		want           int
	}{
		{480, 8, 8},
		{700, 8, 7},
		{1080, 16, 15},
		{97, 8, 1},
		{5, 8, 5},
		{1, 8, 1},
		{12, 5, 4},
		{10, 0, 10},
		{10, -3, 10},
		{0, 8, 0},
		{-4, 8, 0},
	}
	for _, tt := range tests {
		if got := WorkerCount(tt.height, tt.target); got != tt.want {
			t.Fatalf("WorkerCount(%d, %d) = %d, want %d", tt.height, tt.target, got, tt.want)
		}
	}
}

func TestPartitionCoversRowsExactly(t *testing.T) {
	for height := 1; height <= 300; height++ {
		for target := -1; target <= 24; target++ {
			bands := Partition(height, target)
			if len(bands) == 0 {
				t.Fatalf("Partition(%d, %d) returned no bands", height, target)
			}

			seen := make([]int, height)
			rows := bands[0].Rows()
			next := 0
			for _, b := range bands {
				if b.First != next {
					t.Fatalf("Partition(%d, %d): band %s starts at %d, want %d", height, target, b, b.First, next)
				}
				if b.Rows() != rows || rows <= 0 {
					t.Fatalf("Partition(%d, %d): band %s has %d rows, want %d", height, target, b, b.Rows(), rows)
				}
				for r := b.First; r < b.Last; r++ {
					seen[r]++
				}
				next = b.Last
			}
			if next != height {
				t.Fatalf("Partition(%d, %d) ends at %d, want %d", height, target, next, height)
			}
			for r, n := range seen {
				if n != 1 {
					t.Fatalf("Partition(%d, %d): row %d covered %d times", height, target, r, n)
				}
			}
		}
	}
}

func TestPartitionEmpty(t *testing.T) {
	if bands := Partition(0, 8); bands != nil {
		t.Fatalf("Partition(0, 8) = %v, want nil", bands)
	}
}
