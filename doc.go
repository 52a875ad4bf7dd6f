// Package mgpoisson solves the 2D Poisson equation -Δu = f on the unit square
// with homogeneous Dirichlet boundaries by geometric multigrid.
//
// 🚀 What is mgpoisson?
//
//	A small, dependency-light numerical toolkit that brings together:
//		• Operator storage: dense and CSR matrices, Doolittle LU, residuals
//		• Grids: N×N interior points, row-major vectors, manufactured problems
//		• Multigrid: weighted Jacobi, restriction/prolongation, V-cycles,
//		  a convergence loop with divergence detection
//		• Tooling: concurrent benchmarks, PNG/HTML/CSV reports, SQLite
//		  archives, Prometheus metrics and the mgsolve CLI
//
// Under the hood, everything is organized under these subpackages:
//
//	matrix/     — Dense and CSR storage, validators, LU and residual helpers
//	grid/       — grid indexing, spacing, sources and the manufactured solution
//	multigrid/  — Laplacian assembly, smoother, transfers, hierarchy, Solve
//	benchmark/  — two-level vs. max-level runs over several resolutions
//	report/     — residual plots (gonum/plot, go-echarts) and CSV export
//	store/      — SQLite persistence of benchmark rows
//	metrics/    — Prometheus collector implementing multigrid.Observer
//	config/     — YAML configuration
//	cmd/mgsolve — command-line entry point
//
// Quick example:
//
//	res, err := multigrid.Solve(128, multigrid.WithLevels(3))
//	if err != nil { ... }
//	fmt.Println(res.Status, res.Cycles(), res.FinalResidual())
//
//	go install github.com/katalvlaran/mgpoisson/cmd/mgsolve@latest
package mgpoisson
