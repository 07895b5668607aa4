package result

// GuessThreads returns the number of threads a benchmark probably used, for results that did not
// record it.  The table reflects how the benchmarks were threaded when those results were made.
func GuessThreads(benchName string, available int) int {
	switch benchName {
	case "CPU Fibonacci":
		return 1
	case "FPU FFT":
		return firstAtMost(available, 4, 2)
	case "CPU N-Queens":
		return firstAtMost(available, 10, 5, 2)
	default:
		return available
	}
}

// The first of the descending counts that does not exceed available, or 1.
func firstAtMost(available int, counts ...int) int {
	for _, c := range counts {
		if available >= c {
			return c
		}
	}
	return 1
}
