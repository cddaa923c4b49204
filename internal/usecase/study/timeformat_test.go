package study

import "testing"

func TestFormatTime(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{59, "0:59"},
		{60, "1:00"},
		{61, "1:01"},
		{600, "10:00"},
		{3599, "59:59"},
		// Minutes are deliberately not wrapped into hours.
		{3600, "60:00"},
		{3661, "61:01"},
		{-5, "0:00"},
	}
	for _, tc := range cases {
		if got := FormatTime(tc.seconds); got != tc.want {
			t.Errorf("FormatTime(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
