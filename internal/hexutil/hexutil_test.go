package hexutil

import "testing"

func TestParse64(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  uint64
	}{
		{"plain", "dead", 0xdead},
		{"prefixed", "0x1f", 0x1f},
		{"upper prefix", "0X1F", 0x1f},
		{"full width", "ffffffffffffffff", 0xffffffffffffffff},
		{"zero", "0", 0},
		{"trailing garbage", "12zz", 0},
		{"bare prefix", "0x", 0},
		{"empty", "", 0},
		{"negative", "-1", 0},
		{"whitespace", "1f ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse64(tt.token); got != tt.want {
				t.Errorf("Parse64(%q) = %#x, want %#x", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseWidths(t *testing.T) {
	if got := Parse8("1ff"); got != 0xff {
		t.Errorf("Parse8(1ff) = %#x, want 0xff", got)
	}
	if got := Parse16("12345"); got != 0x2345 {
		t.Errorf("Parse16(12345) = %#x, want 0x2345", got)
	}
	if got := Parse32("100000400"); got != 0x400 {
		t.Errorf("Parse32(100000400) = %#x, want 0x400", got)
	}
	if got := Parse8("0x"); got != 0 {
		t.Errorf("Parse8(0x) = %#x, want 0", got)
	}
}
