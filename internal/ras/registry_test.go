package ras

import "testing"

func allBits(n int) []int {
	bits := make([]int, n)
	for i := range bits {
		bits[i] = i
	}
	return bits
}

func TestNewRegistryTableCounts(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if got := len(reg.ErrorSources()); got != NumErrorSources {
		t.Errorf("error sources = %d, want %d", got, NumErrorSources)
	}
	if got := len(reg.EventSources()); got != NumEventSources {
		t.Errorf("event sources = %d, want %d", got, NumEventSources)
	}
	if _, ok := reg.Occurrence(0xffff); !ok {
		t.Error("overflow occurrence missing")
	}
	if _, ok := reg.Occurrence(mcuErrRecord1); !ok {
		t.Error("MCU ERR Record 1 occurrence missing")
	}
}

func TestUpdateSteadyState(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	bits := allBits(16)

	first := reg.Update(0, 0x0013, bits)
	if len(first) != 3 {
		t.Fatalf("first update: %d transitions, want 3", len(first))
	}
	for _, tr := range first {
		if !tr.Asserted {
			t.Errorf("bit %d deasserted on first observation", tr.Bit)
		}
	}

	// Same mask again: steady state, nothing to report.
	if second := reg.Update(0, 0x0013, bits); len(second) != 0 {
		t.Fatalf("second update: %d transitions, want 0", len(second))
	}

	if reg.Mask(0) != 0x0013 {
		t.Errorf("stored mask = %#04x, want 0x0013", reg.Mask(0))
	}
}

func TestUpdateTransitionAlternation(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	bits := allBits(16)

	masks := []uint16{0x0001, 0x0003, 0x0002, 0x0002, 0x0000, 0x8001}

	// Per bit: transitions must alternate assert/deassert, and the net
	// count must equal the bit's net change from all-clear to the final
	// mask.
	lastState := map[int]bool{}
	net := map[int]int{}
	for _, mask := range masks {
		for _, tr := range reg.Update(3, mask, bits) {
			if prev, seen := lastState[tr.Bit]; seen && prev == tr.Asserted {
				t.Fatalf("bit %d: consecutive %v transitions", tr.Bit, tr.Asserted)
			}
			lastState[tr.Bit] = tr.Asserted
			if tr.Asserted {
				net[tr.Bit]++
			} else {
				net[tr.Bit]--
			}
		}
	}

	final := masks[len(masks)-1]
	for bit := 0; bit < 16; bit++ {
		want := 0
		if final&(1<<bit) != 0 {
			want = 1
		}
		if net[bit] != want {
			t.Errorf("bit %d: net transitions = %d, want %d", bit, net[bit], want)
		}
	}
}

func TestUpdateIgnoresBitsOutsideList(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}

	// Only bits 0 and 4 are tracked; bit 2 must neither report nor
	// stick in the mask.
	edges := reg.Update(5, 0x0015, []int{0, 4})
	if len(edges) != 2 {
		t.Fatalf("got %d transitions, want 2", len(edges))
	}
	if reg.Mask(5) != 0x0011 {
		t.Errorf("stored mask = %#04x, want 0x0011", reg.Mask(5))
	}
}
