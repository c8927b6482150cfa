package relax_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/hexlattice/relax"
)

// ExampleRun relaxes an undisplaced lattice, which is already at rest.
func ExampleRun() {
	res, err := relax.Run(context.Background(), relax.Config{Dim: 5, Seed: relax.Int64(1)})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("converged:", res.Success)
	fmt.Printf("energy below 1e-6: %t\n", res.Energy < 1e-6)
	fmt.Println("file:", res.Key().Filename(".json"))
	// Output:
	// converged: true
	// energy below 1e-6: true
	// file: dim=5_dv=0_perc=0_1.json
}
