package dataset_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/storyline/pkg/dataset"
	"github.com/matzehuels/storyline/pkg/storyline"
)

func ExampleFields_Config() {
	const events = `who,year,where
Ada,1840,London
Charles,1840,London
Ada,1843,London
Charles,1843,Turin
`
	records, _ := dataset.Read(strings.NewReader(events), dataset.FormatCSV)
	fields := dataset.Fields{Time: "year", ID: "who", Group: "where"}

	res, _ := storyline.Build(records, fields.Config())
	for _, b := range res.Bands {
		fmt.Printf("%s %v\n", b.Key, b.Times)
	}
	// Output:
	// London [1840 1843]
	// Turin [1843]
}
