package grid_test

import (
	"testing"

	"github.com/katalvlaran/mgpoisson/grid"
)

// BenchmarkInitialize measures sampling the manufactured source on a
// 256×256 interior grid.
// Complexity: O(N²)
func BenchmarkInitialize(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := grid.Initialize(256, grid.ManufacturedSource); err != nil {
			b.Fatalf("Initialize failed: %v", err)
		}
	}
}
