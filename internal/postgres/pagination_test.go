package postgres

import "testing"

func TestClampPage(t *testing.T) {
	cases := []struct {
		name      string
		page, lim int
		wantOff   int
		wantLim   int
	}{
		{"defaults", 0, 0, 0, 20},
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 10, 20, 10},
		{"limit capped", 1, 1000, 0, 100},
		{"negative page", -5, 10, 0, 10},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			off, lim := clampPage(c.page, c.lim)
			if off != c.wantOff || lim != c.wantLim {
				t.Fatalf("clampPage(%d,%d) = (%d,%d), want (%d,%d)",
					c.page, c.lim, off, lim, c.wantOff, c.wantLim)
			}
		})
	}
}
