package cursor

import "testing"

func TestAddressNeighbors(t *testing.T) {
	tests := []struct {
		addr  Address
		left  int
		right int
		half  float64
		str   string
		isGap bool
	}{
		{Gap(0), -1, 0, -0.5, "-0.5", true},
		{Gap(3), 2, 3, 2.5, "2.5", true},
		{On(0), 0, 0, 0, "0", false},
		{On(2), 2, 2, 2, "2", false},
	}

	for _, tt := range tests {
		if got := tt.addr.Left(); got != tt.left {
			t.Errorf("%s.Left() = %d, expected %d", tt.str, got, tt.left)
		}
		if got := tt.addr.Right(); got != tt.right {
			t.Errorf("%s.Right() = %d, expected %d", tt.str, got, tt.right)
		}
		if got := tt.addr.Half(); got != tt.half {
			t.Errorf("%s.Half() = %v, expected %v", tt.str, got, tt.half)
		}
		if got := tt.addr.String(); got != tt.str {
			t.Errorf("String() = %q, expected %q", got, tt.str)
		}
		if got := tt.addr.IsGap(); got != tt.isGap {
			t.Errorf("%s.IsGap() = %v, expected %v", tt.str, got, tt.isGap)
		}
	}
}

func TestAddressSteps(t *testing.T) {
	a := Gap(0)
	if a.Next() != Gap(1) {
		t.Errorf("expected Gap(1), got %s", a.Next())
	}
	if a.Next().Prev() != a {
		t.Error("Next then Prev should round-trip")
	}
	if On(1).Next() != On(2) {
		t.Errorf("expected On(2), got %s", On(1).Next())
	}
	if On(1).Prev() != On(0) {
		t.Errorf("expected On(0), got %s", On(1).Prev())
	}
}

func TestAddressZeroValue(t *testing.T) {
	var a Address
	if a != Gap(0) {
		t.Errorf("zero address should be Gap(0), got %s", a)
	}
}
