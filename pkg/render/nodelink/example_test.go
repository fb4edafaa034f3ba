package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/storyline/pkg/render/nodelink"
	"github.com/matzehuels/storyline/pkg/storyline"
)

type scene struct {
	Who, Where string
	Chapter    int
}

func ExampleCoOccurrence() {
	scenes := []scene{
		{"Anna", "Rome", 1}, {"Ben", "Rome", 1},
		{"Anna", "Rome", 2}, {"Ben", "Rome", 2}, {"Cleo", "Rome", 2},
	}
	res, _ := storyline.Build(scenes, storyline.Config[scene]{
		Time:  func(s scene) float64 { return float64(s.Chapter) },
		ID:    func(s scene) string { return s.Who },
		Group: func(s scene) string { return s.Where },
	})

	for _, e := range nodelink.CoOccurrence(res) {
		fmt.Printf("%s -- %s: %d\n", e.From, e.To, e.Shared)
	}
	// Output:
	// Anna -- Ben: 2
	// Anna -- Cleo: 1
	// Ben -- Cleo: 1
}
