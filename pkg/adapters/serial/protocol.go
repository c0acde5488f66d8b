package serial

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedLine is returned for device lines that do not parse.
var ErrMalformedLine = errors.New("malformed device line")

// Sample is the latest sensor state reported by the device.
type Sample struct {
	Brightness              int
	Red, Green, Blue, Alpha int
	Optical, Ultrasonic     int
}

// apply updates s from one device line.
func (s *Sample) apply(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	want := map[string]int{"L": 1, "C": 4, "D": 2}
	n, ok := want[fields[0]]
	if !ok {
		return fmt.Errorf("%w: unknown tag %q", ErrMalformedLine, fields[0])
	}
	if len(fields)-1 != n {
		return fmt.Errorf("%w: %q wants %d values", ErrMalformedLine, line, n)
	}

	vals := make([]int, n)
	for i, f := range fields[1:] {
		v, err := strconv.Atoi(f)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrMalformedLine, line, err)
		}
		vals[i] = v
	}

	switch fields[0] {
	case "L":
		s.Brightness = vals[0]
	case "C":
		s.Red, s.Green, s.Blue, s.Alpha = vals[0], vals[1], vals[2], vals[3]
	case "D":
		s.Optical, s.Ultrasonic = vals[0], vals[1]
	}
	return nil
}

func powerLine(tag string, channel string, v float64) string {
	if channel == "" {
		return fmt.Sprintf("%s %.3f\n", tag, v)
	}
	return fmt.Sprintf("%s %s %.3f\n", tag, channel, v)
}
