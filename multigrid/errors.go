// SPDX-License-Identifier: MIT

package multigrid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGridSize indicates that the finest grid size cannot be halved
	// the requested number of times (some level above the coarsest is odd or < 2).
	ErrInvalidGridSize = errors.New("multigrid: invalid grid size")

	// ErrCoarseSolve indicates the coarsest-level direct solve failed: the
	// operator is not positive definite, is ill-conditioned, or produced a
	// non-finite solution.
	ErrCoarseSolve = errors.New("multigrid: coarse solve failed")

	// ErrInvalidOption indicates a nonsensical solver parameter.
	ErrInvalidOption = errors.New("multigrid: invalid option")

	// ErrDimensionMismatch indicates a grid vector whose length does not match
	// the level it is used on.
	ErrDimensionMismatch = errors.New("multigrid: vector length does not match level")
)

// Operation tags used by mgErrorf.
const (
	opAssemble  = "Assemble"
	opRelax     = "Relax"
	opRestrict  = "Restrict"
	opProlong   = "Prolong"
	opBuild     = "BuildHierarchy"
	opCycle     = "Cycle"
	opCoarse    = "CoarseSolve"
	opSolve     = "Solve"
	opSolveSys  = "SolveSystem"
	opFactorize = "Factorize"
)

// mgErrorf wraps err with an operation tag; errors.Is keeps matching the sentinel.
func mgErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
