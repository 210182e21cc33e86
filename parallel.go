package quadcollide

import "sync"

// parallelFor runs fn(i) for i in [0, n) across up to workers goroutines,
// chunked contiguously, and blocks until all chunks complete. Used for the
// sweep-refresh, position-advance, and leaf-refresh parallel regions of a
// step (wall-bounce uses parallelForReduceInt below), grounded on the chunked sync.WaitGroup pattern the pack's
// pthm-soup/game-parallel.go example uses for per-tick parallel work
// ("chunkSize := (n + numWorkers - 1) / numWorkers").
//
// Each index is touched by exactly one goroutine, so callers may mutate
// per-index state (a single segment, a single leaf) without additional
// synchronization.
func parallelFor(n, workers int, fn func(i int)) {
	if n == 0 {
		return
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunkSize := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		if start >= n {
			break
		}
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// parallelForReduceInt is parallelFor plus an integer reduction: each chunk
// accumulates its own local partial by calling fn once per index, and the
// partials are summed once all chunks finish. Used for the wall-collision
// counter, which must come out the same regardless of how work is chunked
// across workers.
func parallelForReduceInt(n, workers int, fn func(i int) int) int {
	if n == 0 {
		return 0
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		total := 0
		for i := 0; i < n; i++ {
			total += fn(i)
		}
		return total
	}

	chunkSize := (n + workers - 1) / workers
	partials := make([]int, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		if start >= n {
			break
		}
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			local := 0
			for i := start; i < end; i++ {
				local += fn(i)
			}
			partials[w] = local
		}(w, start, end)
	}
	wg.Wait()

	total := 0
	for _, p := range partials {
		total += p
	}
	return total
}
