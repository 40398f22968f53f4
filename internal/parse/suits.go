package parse

import "strings"

// The export encodes suit glyphs as UTF-8 read back through Latin-1, so a
// club shows up as the three characters "â", U+0099 and "£". Each mojibake
// sequence maps to a suit word; the clean UTF-8 glyphs are included for
// exports that survived with their encoding intact. The translation is
// idempotent: no replacement output contains a glyph byte.
var suitPairs = []string{
	"â£", "Clubs",
	"â¦", "Diamonds",
	"â¥", "Hearts",
	"â ", "Spades",
	"♣", "Clubs",
	"♦", "Diamonds",
	"♥", "Hearts",
	"♠", "Spades",
}

var suitReplacer = strings.NewReplacer(suitPairs...)

// DecodeSuits translates suit glyphs in a raw line to their word form
// (Clubs/Diamonds/Hearts/Spades). It must be applied to the whole line
// before classification so every downstream card parse sees words only.
func DecodeSuits(line string) string {
	return suitReplacer.Replace(line)
}
