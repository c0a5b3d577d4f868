package enrichment

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// hypergeomSF computes the hypergeometric survival function P(X >= k) for
// X ~ Hypergeometric(M, n, N): M is the background size, n the number of
// "success" elements in the background (the module's pathway KOs), N the
// sample size (the query KOs).
//
// It accumulates the tail in log-space via gonum's log-binomial-coefficient
// helper (numerically stable for the KO-count magnitudes this profiler
// deals with) rather than a naive factorial-ratio computation.
func hypergeomSF(k, M, n, N int) float64 {
	lo := 0
	if N-(M-n) > lo {
		lo = N - (M - n)
	}
	hi := n
	if N < hi {
		hi = N
	}

	if k > hi {
		return 0
	}
	if k <= lo {
		return 1
	}

	logDenom := combin.LogGeneralizedBinomial(float64(M), float64(N))
	logs := make([]float64, 0, hi-k+1)
	for i := k; i <= hi; i++ {
		logPMF := combin.LogGeneralizedBinomial(float64(n), float64(i)) +
			combin.LogGeneralizedBinomial(float64(M-n), float64(N-i)) -
			logDenom
		logs = append(logs, logPMF)
	}

	return math.Min(1, math.Exp(logSumExp(logs)))
}

// logSumExp returns log(sum(exp(xs))) computed with the max-subtraction
// trick for numerical stability.
func logSumExp(xs []float64) float64 {
	if len(xs) == 0 {
		return math.Inf(-1)
	}

	max := xs[0]
	for _, x := range xs[1:] {
		if x > max {
			max = x
		}
	}
	if math.IsInf(max, -1) {
		return max
	}

	var sum float64
	for _, x := range xs {
		sum += math.Exp(x - max)
	}

	return max + math.Log(sum)
}
