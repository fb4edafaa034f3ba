package geometry_test

import (
	"fmt"

	"github.com/matzehuels/storyline/pkg/geometry"
)

func ExampleBuild() {
	// Three evenly spaced chapters across a 900px chart
	g, err := geometry.Build([]float64{1, 2, 3}, 900)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("Padding:", g.Padding)
	for _, t := range []float64{1, 2, 3} {
		fmt.Printf("x(%v) = %v\n", t, g.X(t))
	}
	// Output:
	// Padding: 100
	// x(1) = 100
	// x(2) = 450
	// x(3) = 800
}

func ExamplePoints() {
	g, _ := geometry.Build([]float64{1, 2, 3}, 900)

	// A curve that steps down after the first chapter
	pts := geometry.Points([]geometry.Knot{{Time: 1, Y: 0}, {Time: 2, Y: 1}, {Time: 3, Y: 1}}, g)
	for _, p := range pts {
		fmt.Printf("(%v, %v)\n", p.X, p.Y)
	}
	// Output:
	// (0, 0)
	// (200, 0)
	// (350, 1)
	// (550, 1)
	// (700, 1)
	// (900, 1)
}
