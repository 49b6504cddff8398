package stats

import (
	"math"
	"strconv"
	"unicode/utf16"
)

// DefaultSeed is used when there is neither a name nor an id to hash
const DefaultSeed int64 = 12345

// HashName folds s into a non-negative seed. Each step computes
// c + (h<<5) - h over UTF-16 code units, with the shift done in 32 bits,
// so names hash the same way browsers hashed them for the first charts.
func HashName(s string) int64 {
	var h int64
	for _, c := range utf16.Encode([]rune(s)) {
		shifted := toInt32(h) << 5
		h = int64(c) + int64(shifted) - h
	}
	if h < 0 {
		return -h
	}
	return h
}

// SeedFor returns the generator seed for a player
func SeedFor(name string, id int64) int64 {
	switch {
	case name != "":
		return HashName(name)
	case id > 0:
		return HashName(strconv.FormatInt(id, 10))
	default:
		return DefaultSeed
	}
}

// Rand returns an integer in [min, max] derived only from seed and the
// bounds. The same arguments always produce the same value.
func Rand(seed int64, min, max int) int {
	if max < min {
		min, max = max, min
	}
	x := math.Sin(float64(seed+int64(min)+int64(max))) * 10000
	frac := x - math.Floor(x)
	return int(math.Floor(frac*float64(max-min+1))) + min
}

// Pick returns one element of choices chosen by seed
func Pick(seed int64, choices []string) string {
	if len(choices) == 0 {
		return ""
	}
	return choices[Rand(seed, 0, len(choices)-1)]
}

func toInt32(v int64) int32 {
	return int32(uint32(v))
}
