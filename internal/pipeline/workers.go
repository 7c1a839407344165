package pipeline

import "runtime"

const (
	minWorkers = 4
	maxWorkers = 16
)

// WorkerCount resolves the worker-pool size. A positive override wins;
// anything else falls back to twice the CPU count clamped to [4, 16].
func WorkerCount(override int) int {
	if override > 0 {
		return override
	}
	workers := 2 * runtime.NumCPU()
	if workers < minWorkers {
		return minWorkers
	}
	if workers > maxWorkers {
		return maxWorkers
	}
	return workers
}
