package layout

import "testing"

func TestRectDimensions(t *testing.T) {
	tests := []struct {
		name       string
		rect       Rect
		wantWidth  float64
		wantHeight float64
		wantCX     float64
		wantCY     float64
	}{
		{
			name:       "full surface",
			rect:       Rect{Left: 0, Right: 1, Bottom: 0, Top: 1},
			wantWidth:  1,
			wantHeight: 1,
			wantCX:     0.5,
			wantCY:     0.5,
		},
		{
			name:       "lower half",
			rect:       Rect{Left: 0, Right: 1, Bottom: 0, Top: 0.5},
			wantWidth:  1,
			wantHeight: 0.5,
			wantCX:     0.5,
			wantCY:     0.25,
		},
		{
			name:       "degenerate",
			rect:       Rect{Left: 0.2, Right: 0.2, Bottom: 0.3, Top: 0.3},
			wantWidth:  0,
			wantHeight: 0,
			wantCX:     0.2,
			wantCY:     0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Width(); !near(got, tt.wantWidth) {
				t.Errorf("Width() = %v, want %v", got, tt.wantWidth)
			}
			if got := tt.rect.Height(); !near(got, tt.wantHeight) {
				t.Errorf("Height() = %v, want %v", got, tt.wantHeight)
			}
			if got := tt.rect.CenterX(); !near(got, tt.wantCX) {
				t.Errorf("CenterX() = %v, want %v", got, tt.wantCX)
			}
			if got := tt.rect.CenterY(); !near(got, tt.wantCY) {
				t.Errorf("CenterY() = %v, want %v", got, tt.wantCY)
			}
		})
	}
}

func TestRangeEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Range
		want bool
	}{
		{"identical", Range{0, 10}, Range{0, 10}, true},
		{"rounding noise", Range{0, 1e6}, Range{1e-7, 1e6}, true},
		{"zoomed", Range{0, 10}, Range{2, 8}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}
