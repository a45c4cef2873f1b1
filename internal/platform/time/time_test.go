package time

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateLike(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"2021-01-01T00:00:00Z", 1609459200},
		{"2021-01-01T00:00:00.999Z", 1609459200},
		{"2021-01-01T01:00:00+01:00", 1609459200},
		{"2021-01-01T00:00:00", 1609459200},
		{"2021-01-01 00:00:00", 1609459200},
		{"2021-01-01", 1609459200},
		{"2021-01", 1609459200},
		{"Fri, 01 Jan 2021 00:00:00 GMT", 1609459200},
		{"Fri, 01 Jan 2021 01:00:00 +0100", 1609459200},
		{"Fri Jan 01 2021 01:00:00 GMT+0100 (Central European Standard Time)", 1609459200},
		{"Jan 1, 2021", 1609459200},
		{"  2021-01-01  ", 1609459200},
		{"1609459200", 1609459200},
	}
	for _, c := range cases {
		got, err := ParseDateLike(c.in)
		if err != nil {
			t.Fatalf("ParseDateLike(%q) error: %v", c.in, err)
		}
		if s := EpochSeconds(got); s != c.want {
			t.Fatalf("ParseDateLike(%q) = %d, want %d", c.in, s, c.want)
		}
	}
}

func TestParseDateLike_Rejects(t *testing.T) {
	for _, in := range []string{"", "   ", "yesterday", "2021-13-01", "NaN"} {
		if _, err := ParseDateLike(in); !errors.Is(err, ErrUnparseable) {
			t.Fatalf("ParseDateLike(%q) err = %v, want ErrUnparseable", in, err)
		}
	}
}

func TestEpochSeconds_Floors(t *testing.T) {
	before := time.Date(1969, 12, 31, 23, 59, 59, 500_000_000, time.UTC)
	if got := EpochSeconds(before); got != -1 {
		t.Fatalf("EpochSeconds(pre-epoch fraction) = %d, want -1", got)
	}
	after := time.Date(2021, 1, 1, 0, 0, 0, 999_999_999, time.UTC)
	if got := EpochSeconds(after); got != 1609459200 {
		t.Fatalf("EpochSeconds(fraction) = %d", got)
	}
}
