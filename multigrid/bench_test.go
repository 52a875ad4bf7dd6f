package multigrid_test

import (
	"testing"

	"github.com/katalvlaran/mgpoisson/grid"
	"github.com/katalvlaran/mgpoisson/multigrid"
)

// BenchmarkAssemble128 measures assembly of a 16384-unknown operator.
func BenchmarkAssemble128(b *testing.B) {
	h := grid.Spacing(128)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := multigrid.Assemble(128, h); err != nil {
			b.Fatalf("Assemble failed: %v", err)
		}
	}
}

// BenchmarkCycle128 measures one V-cycle on N=128 with four levels.
func BenchmarkCycle128(b *testing.B) {
	const n = 128
	h, err := multigrid.BuildHierarchy(n, 3)
	if err != nil {
		b.Fatalf("setup BuildHierarchy failed: %v", err)
	}
	p, err := grid.Initialize(n, grid.ManufacturedSource)
	if err != nil {
		b.Fatalf("setup Initialize failed: %v", err)
	}
	x := make([]float64, n*n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = h.Cycle(x, p.B); err != nil {
			b.Fatalf("Cycle failed: %v", err)
		}
	}
}

// BenchmarkSolve32 measures a full two-level solve.
func BenchmarkSolve32(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := multigrid.Solve(32); err != nil {
			b.Fatalf("Solve failed: %v", err)
		}
	}
}
