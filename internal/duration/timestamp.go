package duration

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var ErrMalformedTimestamp = errors.New("malformed timestamp")

const (
	secondsPerDay    = 24 * 60 * 60
	secondsPerMinute = 60
)

var (
	wallClockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([AP]M)?$`)
	isoClockRe  = regexp.MustCompile(`^PT(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?$`)
)

// ParseWallClock converts "HH:MM", "HH:MM:SS", "H:MM AM" or "HH:MMPM" into
// seconds since midnight.
func ParseWallClock(s string) (int, error) {
	m := wallClockRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	second := 0
	if m[3] != "" {
		second, _ = strconv.Atoi(m[3])
	}
	if minute > 59 || second > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}

	switch m[4] {
	case "":
		if hour > 23 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
		}
	default:
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
		}
		hour %= 12
		if m[4] == "PM" {
			hour += 12
		}
	}

	return hour*3600 + minute*60 + second, nil
}

// MinutesSinceMidnight is ParseWallClock expressed in minutes.
func MinutesSinceMidnight(s string) (float64, error) {
	sec, err := ParseWallClock(s)
	if err != nil {
		return 0, err
	}
	return float64(sec) / secondsPerMinute, nil
}

// Elapsed returns the minutes from start to end, both in seconds since
// midnight. An end earlier than start was logged after midnight.
func Elapsed(start, end int) float64 {
	if end < start {
		end += secondsPerDay
	}
	return math.Round(float64(end-start)/secondsPerMinute*100) / 100
}

// GameClockSeconds parses a period clock reading ("9:59", "09:59.0" or
// "PT09M59.00S") into seconds remaining.
func GameClockSeconds(s string) (float64, error) {
	c, err := parseGameClock(s)
	if err != nil {
		return 0, err
	}
	return float64(c) / 10, nil
}

// gameClock is a period clock reading in tenths of a second, so "9:59",
// "09:59" and "9:59.0" compare equal.
type gameClock int

func parseGameClock(s string) (gameClock, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	if m := isoClockRe.FindStringSubmatch(s); m != nil && (m[1] != "" || m[2] != "") {
		minutes, _ := strconv.Atoi(m[1])
		seconds, _ := strconv.ParseFloat(m[2], 64)
		return toGameClock(minutes, seconds), nil
	}

	mm, ss, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid game clock %q", s)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("invalid game clock %q", s)
	}
	seconds, err := strconv.ParseFloat(ss, 64)
	if err != nil || seconds < 0 || seconds >= 60 {
		return 0, fmt.Errorf("invalid game clock %q", s)
	}
	return toGameClock(minutes, seconds), nil
}

func toGameClock(minutes int, seconds float64) gameClock {
	return gameClock(math.Round((float64(minutes)*60 + seconds) * 10))
}
