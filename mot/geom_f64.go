package mot

import (
	"math"

	"github.com/LdDl/mr-go/mr"
)

// Point is a position on the image plane, pixels
type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

// NewPointFrom returns position of the sample
func NewPointFrom(sample mr.Sample) Point {
	return Point{
		X: sample.X,
		Y: sample.Y,
	}
}

func euclideanDistance(p1, p2 Point) float64 {
	return math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
}
