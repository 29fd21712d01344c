package transformers

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var coordinateToken = regexp.MustCompile(`-?\d*\.?\d+`)

// keep returns s upper-cased with every rune outside digits, '.', '-' and the
// two hemisphere letters removed.
func keep(s string, hemispheres string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		case strings.ContainsRune(hemispheres, r):
			return r
		}
		return -1
	}, strings.ToUpper(s))
}

// token extracts the first signed decimal and the character right after it.
func token(s string) (float64, byte, bool) {
	loc := coordinateToken.FindStringIndex(s)
	if loc == nil {
		return 0, 0, false
	}
	v, err := strconv.ParseFloat(s[loc[0]:loc[1]], 64)
	if err != nil {
		return 0, 0, false
	}
	var next byte
	if loc[1] < len(s) {
		next = s[loc[1]]
	}
	return v, next, true
}

// ParseLatitude reads free-form latitude text such as "53.5N" or "53.5°S".
// A trailing S negates the value. Range is not checked.
func ParseLatitude(text string) *float64 {
	v, hemi, ok := token(keep(text, "NS"))
	if !ok {
		return nil
	}
	if hemi == 'S' {
		v = -v
	}
	return &v
}

// ParseLongitude reads free-form longitude text. A trailing W forces the value
// west of the meridian.
func ParseLongitude(text string) *float64 {
	v, hemi, ok := token(keep(text, "EW"))
	if !ok {
		return nil
	}
	if hemi == 'W' {
		v = -math.Abs(v)
	}
	return &v
}

func ParseCoordinates(latText, lonText string) (lat, lon *float64) {
	return ParseLatitude(latText), ParseLongitude(lonText)
}
