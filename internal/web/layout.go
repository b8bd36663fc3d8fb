package web

import (
	"fmt"
	"math"
)

// Placement positions a gallery card on the board. Left and Top are
// percentages of the board, Rotation is in degrees.
type Placement struct {
	Left     float64
	Top      float64
	Rotation float64
	Scale    float64
}

// PlaceSketch derives a stable scattered placement from a sketch id.
// The page script carries the same formula for cards added client-side.
func PlaceSketch(id int64) Placement {
	seed1 := seed(id, 12345)
	seed2 := seed(id, 67890)
	seed3 := seed(id, 54321)
	return Placement{
		Left:     math.Mod(seed1, 60) + 5,
		Top:      math.Mod(seed2, 50) + 5,
		Rotation: math.Mod(seed3, 30) - 15,
		Scale:    0.9 + math.Mod(seed1*7, 20)/100,
	}
}

func seed(id int64, factor float64) float64 {
	return math.Abs(math.Sin(float64(id)*factor) * 10000)
}

// Style renders the placement as an inline style; index orders overlapping cards.
func (p Placement) Style(index int) string {
	return fmt.Sprintf("left:%.2f%%;top:%.2f%%;transform:rotate(%.2fdeg) scale(%.3f);z-index:%d",
		p.Left, p.Top, p.Rotation, p.Scale, 10+index)
}
