package videos

import "testing"

func TestFormatViews(t *testing.T) {
	cases := []struct {
		n    uint64
		want string
	}{
		{0, "0 views"},
		{1, "1 views"},
		{999, "999 views"},
		{1_000, "1.0K views"},
		{1_234, "1.2K views"},
		{1_299, "1.2K views"}, // truncated, not rounded
		{999_999, "999.9K views"},
		{1_000_000, "1.0M views"},
		{1_250_000, "1.2M views"},
		{2_490_000_0, "24.9M views"},
	}
	for _, c := range cases {
		if got := FormatViews(c.n); got != c.want {
			t.Errorf("FormatViews(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestParseISODuration(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"PT12M", 12},
		{"PT12M34S", 13}, // partial final minute rounds up
		{"PT1H", 60},
		{"PT1H2M30S", 63},
		{"PT45S", 1},
		{"PT90S", 2}, // overflowing seconds carry whole minutes
		{"PT119S", 2},
		{"PT120S", 2},
		{"PT1M90S", 3},
		{"PT0S", 0},
		{"P1DT1H", 1500},
		{"", 0},
		{"garbage", 0},
		{"PTM", 0},
	}
	for _, c := range cases {
		if got := ParseISODuration(c.in); got != c.want {
			t.Errorf("ParseISODuration(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
