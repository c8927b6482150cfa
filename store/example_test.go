package store_test

import (
	"fmt"

	"github.com/katalvlaran/hexlattice/store"
)

func ExampleParseKey() {
	fmt.Println(store.ParseValues("dim=5_dv=2.5_perc=0_12345.pickle"))
	k, err := store.ParseKey("results/dim=5_dv=2.5_perc=0_12345.json")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(k.Dim, k.DV, k.Perc, k.Seed)
	fmt.Println(k.Filename(store.FileExt))
	// Output:
	// [5 2.5 0 12345] <nil>
	// 5 2.5 0 12345
	// dim=5_dv=2.5_perc=0_12345.json
}
