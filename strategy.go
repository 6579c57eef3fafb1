package optim

// kernelStrategy selects how a rule's per-step arithmetic is executed.
type kernelStrategy int

const (
	// strategyBLAS expresses the update as a sequence of BLAS level-1 calls
	// plus small element-wise passes. Preferred for small parameter groups
	// where per-call overhead is negligible.
	strategyBLAS kernelStrategy = iota
	// strategyFused runs a single hand-fused loop per parameter. Preferred
	// for large groups where memory bandwidth dominates and touching each
	// buffer once per step matters.
	strategyFused
)

// fusedThreshold is the total element count at which fused kernels start to
// win over chained BLAS calls.
const fusedThreshold = 2048

// selectKernelStrategy chooses the strategy for a parameter group of the
// given total element count. Both strategies compute the same update; the
// choice only affects memory traffic.
func selectKernelStrategy(totalLen int) kernelStrategy {
	if totalLen >= fusedThreshold {
		return strategyFused
	}
	return strategyBLAS
}
