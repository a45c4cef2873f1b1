// Package time contains time related helpers
package time

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrUnparseable is returned when the input is not a recognisable date
var ErrUnparseable = errors.New("unparseable date")

// ParseDateLike parses the date strings a browser date picker or date formatter would
// produce, including "Fri Jan 01 2021 01:00:00 GMT+0100 (Central European Standard Time)".
// Inputs without a zone are read as UTC and an all digit input is taken as unix time
func ParseDateLike(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnparseable
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	return t, nil
}

// EpochSeconds returns whole seconds since the Unix epoch, rounding toward negative
// infinity so fractional seconds are dropped rather than rounded up
func EpochSeconds(t time.Time) int64 { return t.Unix() }
