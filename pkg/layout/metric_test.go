package layout

import (
	"math"
	"testing"
)

func strPtr(s string) *string {
	return &s
}

func TestTimestampToDepth(t *testing.T) {
	tests := []struct {
		name string
		ts   *string
		want func(got float64) bool
	}{
		{
			name: "nil timestamp maps to center",
			ts:   nil,
			want: func(got float64) bool { return got == 0 },
		},
		{
			name: "empty timestamp maps to center",
			ts:   strPtr(""),
			want: func(got float64) bool { return got == 0 },
		},
		{
			name: "unparseable timestamp maps to center",
			ts:   strPtr("sometime in spring"),
			want: func(got float64) bool { return got == 0 },
		},
		{
			name: "window start maps to lower edge",
			ts:   strPtr("1970-01-01"),
			want: func(got float64) bool { return got == -depthRange / 2 },
		},
		{
			name: "before window clamps to lower edge",
			ts:   strPtr("1901-06-15"),
			want: func(got float64) bool { return got == -depthRange / 2 },
		},
		{
			name: "after window clamps to upper edge",
			ts:   strPtr("2085-01-01"),
			want: func(got float64) bool { return got == depthRange / 2 },
		},
		{
			name: "mid-window date lands near center",
			ts:   strPtr("1997-07-01"),
			want: func(got float64) bool { return math.Abs(got) < depthRange / 8 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimestampToDepth(tt.ts)
			if !tt.want(got) {
				t.Errorf("TimestampToDepth(%v) = %v", tt.ts, got)
			}
		})
	}
}

func TestTimestampToDepthMonotonic(t *testing.T) {
	dates := []string{"1975-01-01", "1986-05-20", "1999-12-31", "2004-03-01", "2019-08-08"}
	prev := math.Inf(-1)
	for _, d := range dates {
		got := TimestampToDepth(&d)
		if got <= prev {
			t.Fatalf("depth not monotonic at %s: %v <= %v", d, got, prev)
		}
		prev = got
	}
}

func TestCalculateImportance(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		maxCount int
		want     float64
		epsilon  float64
	}{
		{name: "zero count near zero", count: 0, maxCount: 100, want: 0, epsilon: 1e-9},
		{name: "max count is one", count: 100, maxCount: 100, want: 1, epsilon: 1e-9},
		{name: "maxCount one triggers fallback", count: 5, maxCount: 1, want: 0.5, epsilon: 0},
		{name: "maxCount zero triggers fallback", count: 0, maxCount: 0, want: 0.5, epsilon: 0},
		{
			name: "log ratio between extremes", count: 10, maxCount: 100,
			want: math.Log(11) / math.Log(101), epsilon: 1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateImportance(tt.count, tt.maxCount)
			if math.IsNaN(got) || got < 0 || got > 1 {
				t.Fatalf("CalculateImportance(%d, %d) = %v out of [0,1]", tt.count, tt.maxCount, got)
			}
			if math.Abs(got-tt.want) > tt.epsilon {
				t.Errorf("CalculateImportance(%d, %d) = %v, want %v", tt.count, tt.maxCount, got, tt.want)
			}
		})
	}
}

func TestImportanceToRadius(t *testing.T) {
	tests := []struct {
		name       string
		importance float64
		want       float64
	}{
		{name: "floor at zero importance", importance: 0, want: minRadius},
		{name: "ceiling at full importance", importance: 1, want: maxRadius},
		{name: "negative clamps to floor", importance: -3, want: minRadius},
		{name: "above one clamps to ceiling", importance: 7, want: maxRadius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ImportanceToRadius(tt.importance)
			if got != tt.want {
				t.Errorf("ImportanceToRadius(%v) = %v, want %v", tt.importance, got, tt.want)
			}
			if got <= 0 {
				t.Errorf("radius must never be zero or negative, got %v", got)
			}
		})
	}
}

func TestCalculateLinkStrength(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		maxCount int
		want     float64
	}{
		{name: "proportional", count: 3, maxCount: 10, want: 0.3},
		{name: "capped at one", count: 20, maxCount: 10, want: 1},
		{name: "zero max yields zero", count: 5, maxCount: 0, want: 0},
		{name: "full ratio", count: 10, maxCount: 10, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLinkStrength(tt.count, tt.maxCount)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CalculateLinkStrength(%d, %d) = %v, want %v", tt.count, tt.maxCount, got, tt.want)
			}
		})
	}
}

func TestIsWeakLink(t *testing.T) {
	if !IsWeakLink(0.29) {
		t.Error("0.29 should be weak")
	}
	if IsWeakLink(0.3) {
		t.Error("0.3 should not be weak, threshold is exclusive")
	}
}
