package boomer

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bei tempi", "beitempi"},
		{"bei tempi", "beitempi"},
		{"beitempi", "beitempi"},
		{"  BEI   TEMPI!!! ", "beitempi"},
		{"bei-tempi", "beitempi"},
		{"bei_tempi...", "beitempi"},
		{"beiTempi", "beitempi"},
		{"Non ci sono più le mezze stagioni", "noncisonopiulemezzestagioni"},
		{"i giovani d'oggi", "igiovanidoggi"},
		{"perché è così", "percheecosi"},
		{"ai miei tempi 2 euro", "aimieitempi2euro"},
		{"", ""},
		{"?!... ", ""},
		{"😂😂", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIgnoresCaseSpacingAndSeparators(t *testing.T) {
	variants := []string{
		"Si stava meglio quando si stava peggio",
		"si stava meglio, quando si stava peggio.",
		"SI STAVA MEGLIO QUANDO SI STAVA PEGGIO",
		"si-stava-meglio-quando-si-stava-peggio",
		"si\tstava\nmeglio quando   si stava peggio?!",
	}

	want := Normalize(variants[0])
	for _, v := range variants[1:] {
		assert.Equal(t, want, Normalize(v), v)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Bei tempi",
		"Piove, governo ladro!",
		"ÀÈÌÒÙ àèìòù",
		"İstanbul",
		"123 stella",
		"‴ᄀⒾᅩ",
		"ᄀ-ᅡ-ᆨ",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}

func TestNormalizeIdempotentRandomRunes(t *testing.T) {
	// ranges mixing separators, marks, cased letters and conjoining jamo
	ranges := [][2]rune{
		{0x20, 0x7e},
		{0xa0, 0x24f},
		{0x300, 0x36f},
		{0x370, 0x3ff},
		{0x400, 0x4ff},
		{0x1100, 0x11ff},
		{0x2000, 0x206f},
		{0x2460, 0x24ff},
		{0xac00, 0xac40},
	}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50000; i++ {
		var b strings.Builder
		for n := 1 + rng.Intn(6); n > 0; n-- {
			r := ranges[rng.Intn(len(ranges))]
			b.WriteRune(r[0] + rune(rng.Intn(int(r[1]-r[0]+1))))
		}
		in := b.String()
		once := Normalize(in)
		if once != Normalize(once) {
			t.Fatalf("Normalize(%q) = %q, but Normalize(%q) = %q", in, once, once, Normalize(once))
		}
	}
}
