package aggregate

import (
	"fmt"
	"math/rand/v2"
)

// Styler assigns the display and link colour of a newly discovered node.
type Styler interface {
	Colors(label string) (color, link string)
}

// RandomStyler picks a random rgb colour per node, with a translucent link variant.
type RandomStyler struct{}

func (RandomStyler) Colors(string) (string, string) {
	r, g, b := rand.IntN(256), rand.IntN(256), rand.IntN(256)
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b), fmt.Sprintf("rgba(%d, %d, %d, 0.3)", r, g, b)
}

// FixedStyler gives every node the same colours.
type FixedStyler struct {
	Color string
	Link  string
}

func (s FixedStyler) Colors(string) (string, string) {
	return s.Color, s.Link
}
