package genesis_test

import (
	"fmt"
	"strings"

	"github.com/kkpan11/genesis"
	"github.com/kkpan11/genesis/popsync"
	"github.com/kkpan11/genesis/seqdict"
	"github.com/kkpan11/genesis/window"
)

// ExampleChromosomeWindows demonstrates streaming a sync file one
// chromosome at a time, with window bounds taken from a sequence
// dictionary.
func ExampleChromosomeWindows() {
	const syncData = "2R\t2302\tT\t0:7:0:0:0:0\t0:7:0:0:0:0\n" +
		"2R\t2303\tT\t0:8:0:0:0:0\t0:8:0:0:0:0\n" +
		"3L\t12\tA\t5:0:0:0:0:0\t4:0:0:1:0:0\n"

	dict, err := seqdict.New(
		seqdict.Entry{Name: "2R", Length: 25286936},
		seqdict.Entry{Name: "3L", Length: 28110227},
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	reader := popsync.NewReader(strings.NewReader(syncData))
	for view, err := range genesis.ChromosomeWindows(reader.All(), window.WithSequenceDict(dict)) {
		if err != nil {
			fmt.Println("error:", err)
			return
		}

		var coverage uint64
		count := 0
		for rec := range view.All() {
			count++
			for _, sample := range rec.(popsync.Variant).Samples {
				coverage += sample.Coverage()
			}
		}
		if err := view.Err(); err != nil {
			fmt.Println("error:", err)
			return
		}

		fmt.Printf("%s [%d, %d]: %d records, coverage %d\n",
			view.Chromosome(), view.FirstPosition(), view.LastPosition(), count, coverage)
	}
	if err := reader.Err(); err != nil {
		fmt.Println("error:", err)
	}

	// Output:
	// 2R [1, 25286936]: 2 records, coverage 30
	// 3L [1, 28110227]: 1 records, coverage 10
}
