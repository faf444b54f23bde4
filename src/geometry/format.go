package geometry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned when a region string is not of the form WxH+X+Y.
var ErrInvalidFormat = errors.New("invalid region format, expected <width>x<height>+<x>+<y>")

// String renders r as WxH+X+Y, e.g. 1000x900+100+200.
func (r Rect) String() string {
	return fmt.Sprintf("%sx%s+%s+%s", formatFloat(r.Width), formatFloat(r.Height), formatFloat(r.X), formatFloat(r.Y))
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

// ParseRect parses the WxH+X+Y form produced by Rect.String.
func ParseRect(s string) (Rect, error) {
	width, rest, ok := strings.Cut(s, "x")
	if !ok {
		return Rect{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	height, rest, ok := strings.Cut(rest, "+")
	if !ok {
		return Rect{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	x, y, ok := strings.Cut(rest, "+")
	if !ok {
		return Rect{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	var r Rect
	fields := []struct {
		name string
		text string
		dst  *float32
	}{
		{"x", x, &r.X},
		{"y", y, &r.Y},
		{"width", width, &r.Width},
		{"height", height, &r.Height},
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f.text), 32)
		if err != nil {
			return Rect{}, fmt.Errorf("parse %s of region %q: %w", f.name, s, err)
		}
		*f.dst = float32(v)
	}
	return r, nil
}
