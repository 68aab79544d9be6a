package morse

import (
	"fmt"
	"strings"
)

// Symbol durations and gap lengths, in DIT units
const (
	DitLen    = 1
	DahLen    = 3 * DitLen
	SymGapLen = DitLen
	EOCGapLen = 3 * DitLen
	EOWGapLen = 7 * DitLen
	EOMGapLen = 7 * DitLen
)

// Symbol is a single Morse signal element
type Symbol int

const (
	Dit Symbol = iota
	Dah
)

// Duration returns the symbol's length in DIT units
func (s Symbol) Duration() int {
	if s == Dah {
		return DahLen
	}
	return DitLen
}

func (s Symbol) String() string {
	if s == Dah {
		return "_"
	}
	return "."
}

// Glyph is the ordered symbol sequence encoding one character
type Glyph []Symbol

func (g Glyph) String() string {
	var b strings.Builder
	for _, s := range g {
		b.WriteString(s.String())
	}
	return b.String()
}

// glyph parses a "._" pattern string into a Glyph
func glyph(pattern string) Glyph {
	g := make(Glyph, 0, len(pattern))
	for _, c := range pattern {
		if c == '_' {
			g = append(g, Dah)
		} else {
			g = append(g, Dit)
		}
	}
	return g
}

// code is the supported alphabet: latin letters, digits, a few accented
// letters, and common prosign punctuation
var code = map[rune]Glyph{
	'A': glyph("._"),
	'B': glyph("_..."),
	'C': glyph("_._."),
	'D': glyph("_.."),
	'E': glyph("."),
	'F': glyph(".._."),
	'G': glyph("__."),
	'H': glyph("...."),
	'I': glyph(".."),
	'J': glyph(".___"),
	'K': glyph("_._"),
	'L': glyph("._.."),
	'M': glyph("__"),
	'N': glyph("_."),
	'O': glyph("___"),
	'P': glyph(".__."),
	'Q': glyph("__._"),
	'R': glyph("._."),
	'S': glyph("..."),
	'T': glyph("_"),
	'U': glyph(".._"),
	'V': glyph("..._"),
	'W': glyph(".__"),
	'X': glyph("_.._"),
	'Y': glyph("_.__"),
	'Z': glyph("__.."),

	'1': glyph(".____"),
	'2': glyph("..___"),
	'3': glyph("...__"),
	'4': glyph("...._"),
	'5': glyph("....."),
	'6': glyph("_...."),
	'7': glyph("__..."),
	'8': glyph("___.."),
	'9': glyph("____."),
	'0': glyph("_____"),

	'Á': glyph(".__._"),
	'Ä': glyph("._._"),
	'É': glyph(".._.."),
	'Ñ': glyph("__.__"),
	'Ö': glyph("___."),
	'Ü': glyph("..__"),

	'.':  glyph("._._._"), // AAA
	',':  glyph("__..__"), // MIM
	':':  glyph("___..."), // OS
	';':  glyph("_._._."), // NNN
	'?':  glyph("..__.."), // IMI
	'!':  glyph("_._.__"),
	'-':  glyph("_...._"), // BA
	'_':  glyph("..__._"), // UK
	'(':  glyph("_.__."),  // KN
	')':  glyph("_.__._"), // KK
	'\'': glyph(".____."), // JN
	'=':  glyph("_..._"),  // BT
	'+':  glyph("._._."),  // AR
	'/':  glyph("_.._."),  // DN
	'@':  glyph(".__._."), // AC
	'"':  glyph("._.._."),
}

// UnknownCharacterError reports a rune with no Morse encoding
type UnknownCharacterError struct {
	Char rune
}

func (e *UnknownCharacterError) Error() string {
	return fmt.Sprintf("no morse code for character %q", e.Char)
}

// GlyphFor returns the glyph for a character. Lowercase letters are
// folded to their uppercase encoding.
func GlyphFor(c rune) (Glyph, error) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	g, ok := code[c]
	if !ok {
		return nil, &UnknownCharacterError{Char: c}
	}
	return g, nil
}

// Supported reports whether a character has a Morse encoding. The word
// separator (space) is handled by the compiler, not the table.
func Supported(c rune) bool {
	_, err := GlyphFor(c)
	return err == nil
}
