package models

import "testing"

func TestPrizeForLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   int
		want    int
		wantErr bool
	}{
		{name: "first level", level: 0, want: 100},
		{name: "middle level", level: 4, want: 1000},
		{name: "last level", level: 14, want: 1000000},
		{name: "negative level", level: -1, wantErr: true},
		{name: "past the ladder", level: 15, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PrizeForLevel(tt.level)
			if tt.wantErr {
				if err != ErrOutOfRange {
					t.Errorf("PrizeForLevel(%d) error = %v, want ErrOutOfRange", tt.level, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("PrizeForLevel(%d) unexpected error: %v", tt.level, err)
			}
			if got != tt.want {
				t.Errorf("PrizeForLevel(%d) = %d, want %d", tt.level, got, tt.want)
			}
		})
	}
}

func TestGuaranteedPrize(t *testing.T) {
	tests := []struct {
		name         string
		reachedLevel int
		want         int
	}{
		{name: "no level cleared", reachedLevel: 0, want: 0},
		{name: "below first milestone", reachedLevel: 4, want: 0},
		{name: "just past first milestone", reachedLevel: 5, want: 1000},
		{name: "between milestones", reachedLevel: 6, want: 1000},
		{name: "just past second milestone", reachedLevel: 10, want: 32000},
		{name: "on last question", reachedLevel: 14, want: 32000},
		{name: "cleared everything", reachedLevel: 15, want: 1000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GuaranteedPrize(tt.reachedLevel); got != tt.want {
				t.Errorf("GuaranteedPrize(%d) = %d, want %d", tt.reachedLevel, got, tt.want)
			}
		})
	}
}

func TestPrizesStrictlyIncreasing(t *testing.T) {
	for i := 1; i < len(Prizes); i++ {
		if Prizes[i] <= Prizes[i-1] {
			t.Errorf("Prizes[%d] = %d is not greater than Prizes[%d] = %d", i, Prizes[i], i-1, Prizes[i-1])
		}
	}
}

func TestMaxPrize(t *testing.T) {
	if MaxPrize() != 1000000 {
		t.Errorf("MaxPrize() = %d, want 1000000", MaxPrize())
	}
}
