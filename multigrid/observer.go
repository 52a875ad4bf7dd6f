package multigrid

// Observer receives progress from the convergence loop. Calls happen on the
// goroutine running the solve, in cycle order.
type Observer interface {
	// OnCycle is called after every completed V-cycle with the 1-based cycle
	// number and the finest-level residual norm.
	OnCycle(cycle int, residual float64)
	// OnFinish is called once with the final result, whatever the status.
	OnFinish(res *Result)
}

// observers fans out to several observers in registration order.
type observers []Observer

func (o observers) OnCycle(cycle int, residual float64) {
	for _, ob := range o {
		ob.OnCycle(cycle, residual)
	}
}

func (o observers) OnFinish(res *Result) {
	for _, ob := range o {
		ob.OnFinish(res)
	}
}
