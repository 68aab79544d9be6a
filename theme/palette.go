package theme

type RGB [3]uint8

type Palette struct {
	Name   string
	Colors []RGB
}

// Amber is the built-in palette: a dark-to-bright amber ramp that
// reads like a hardware module's display.
func Amber() *Palette {
	return &Palette{
		Name: "amber",
		Colors: []RGB{
			{16, 10, 4},
			{46, 28, 8},
			{84, 50, 12},
			{128, 76, 16},
			{178, 106, 24},
			{216, 140, 36},
			{240, 172, 56},
			{250, 200, 90},
			{255, 224, 140},
			{255, 244, 200},
		},
	}
}

// Lookup returns interpolated color for normalized value 0-1
func (p *Palette) Lookup(norm float64) RGB {
	if norm <= 0 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[len(p.Colors)-1]
	}

	// Find the two colors to interpolate between
	pos := norm * float64(len(p.Colors)-1)
	i := int(pos)
	frac := pos - float64(i)

	c0 := p.Colors[i]
	c1 := p.Colors[i+1]

	return RGB{
		lerp(c0[0], c1[0], frac),
		lerp(c0[1], c1[1], frac),
		lerp(c0[2], c1[2], frac),
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}

// Index returns color at specific index (no interpolation)
func (p *Palette) Index(i int) RGB {
	if i < 0 {
		return p.Colors[0]
	}
	if i >= len(p.Colors) {
		return p.Colors[len(p.Colors)-1]
	}
	return p.Colors[i]
}
