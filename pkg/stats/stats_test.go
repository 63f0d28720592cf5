package stats

import "testing"

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		p    int
		want float64
	}{
		{0, 1},
		{50, 6},
		{90, 10},
		{100, 10},
	}

	for _, tt := range tests {
		if got := Percentile(sorted, tt.p); got != tt.want {
			t.Errorf("Percentile(%d) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestPercentileEmpty(t *testing.T) {
	if got := Percentile(nil, 50); got != 0 {
		t.Errorf("Percentile(nil, 50) = %v, want 0", got)
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{2, 4, 6}); got != 4 {
		t.Errorf("Mean = %v, want 4", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
}

func TestMedianInt(t *testing.T) {
	tests := []struct {
		values []int
		want   int
	}{
		{[]int{3, 1, 2}, 2},
		{[]int{4, 1, 3, 2}, 3}, // upper median
		{[]int{7}, 7},
		{nil, 0},
	}

	for _, tt := range tests {
		if got := MedianInt(tt.values); got != tt.want {
			t.Errorf("MedianInt(%v) = %d, want %d", tt.values, got, tt.want)
		}
	}
}

func TestRounding(t *testing.T) {
	if got := Round2(7.0 / 3.0); got != 2.33 {
		t.Errorf("Round2(7/3) = %v, want 2.33", got)
	}
	if got := Round2(0.125); got != 0.13 {
		t.Errorf("Round2(0.125) = %v, want 0.13", got)
	}
	if got := Round3(1.0 / 3.0); got != 0.333 {
		t.Errorf("Round3(1/3) = %v, want 0.333", got)
	}
}
