package utils

import (
	"fmt"
	"math/rand/v2"
)

// RandomColor returns a muted display colour in CSS hwb() notation.
// Hue stays in the blue range (180..239); whiteness and blackness in 30..69,
// with whiteness nudged by up to ten points so neighbouring tasks differ.
func RandomColor() string {
	hue := 180 + rand.IntN(60)
	white := 30 + rand.IntN(40)
	black := 30 + rand.IntN(40)

	white += rand.IntN(21) - 10
	white = min(max(white, 0), 100)

	return fmt.Sprintf("hwb(%ddeg %d%% %d%%)", hue, white, black)
}
