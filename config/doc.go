// Package config loads mgsolve settings from YAML.
//
// Loading starts from Default, so a file only needs the keys it changes;
// unknown keys are rejected. Example:
//
//	solver:
//	  n: 128
//	  levels: 3
//	  tolerance: 1.0e-7
//	  coarse: cholesky
//	benchmark:
//	  sizes: [16, 32, 64]
//	  parallelism: 4
//	output:
//	  plot: residuals.png
//	  log_level: debug
//
// Command-line flags override file values; see cmd/mgsolve.
package config
