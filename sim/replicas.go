package sim

import (
	"runtime"
	"sync"
)

// RunReplicas runs n independent simulations across a pool of workers and
// returns their event logs in replica order. build must return a fresh
// Simulation for the given replica index, typically seeded with
// rand.DerivedSeed(root, replica); replicas share no mutable state, so the
// combined result is reproducible regardless of worker count.
func RunReplicas(n, workers int, build func(replica int) (*Simulation, error)) ([][]Event, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	logs := make([][]Event, n)
	errs := make([]error, n)

	run := func(i int) {
		s, err := build(i)
		if err != nil {
			errs[i] = err
			return
		}
		logs[i] = s.Run()
	}

	if workers == 1 || n <= 1 {
		for i := 0; i < n; i++ {
			run(i)
		}
	} else {
		var wg sync.WaitGroup
		chunkSize := (n + workers - 1) / workers
		for w := 0; w < workers; w++ {
			start := w * chunkSize
			end := start + chunkSize
			if end > n {
				end = n
			}
			if start >= end {
				break
			}

			wg.Add(1)
			go func(s, e int) {
				defer wg.Done()
				for i := s; i < e; i++ {
					run(i)
				}
			}(start, end)
		}
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return logs, nil
}
