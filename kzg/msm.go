package kzg

import (
	"github.com/cockroachdb/errors"

	"github.com/iotaledger/kzg4844/kzg/curve"
	"github.com/iotaledger/kzg4844/workerpool"
)

// minChunkSize is the smallest number of group operations handed to a single worker.
const minChunkSize = 32

// rangeChunks returns how [0, n) is partitioned into contiguous chunks for the given pool.
func rangeChunks(pool *workerpool.WorkerPool, n int) (count int, size int) {
	count = 1
	if pool != nil {
		count = pool.Size()
	}
	if maxCount := n / minChunkSize; count > maxCount {
		count = maxCount
	}
	if count <= 1 {
		return 1, n
	}

	size = (n + count - 1) / count

	return (n + size - 1) / size, size
}

// parallelRange runs fn over contiguous chunks of [0, n). Chunks are executed on the pool if one
// is given and the range is large enough, otherwise fn is called once in the calling goroutine.
func parallelRange(pool *workerpool.WorkerPool, n int, fn func(from, to int)) error {
	return parallelChunks(pool, n, func(_ int, from, to int) {
		fn(from, to)
	})
}

func parallelChunks(pool *workerpool.WorkerPool, n int, fn func(chunk, from, to int)) error {
	count, size := rangeChunks(pool, n)
	if count == 1 {
		fn(0, 0, n)

		return nil
	}

	batch := pool.Batch()
	for chunk := 0; chunk < count; chunk++ {
		chunk, from, to := chunk, chunk*size, (chunk+1)*size
		if to > n {
			to = n
		}

		if err := batch.Submit(func() { fn(chunk, from, to) }); err != nil {
			_ = batch.Wait()

			return err
		}
	}

	return batch.Wait()
}

// linCombG1 returns Σ scalars[i]·points[i]. The partial sums of the chunks are combined in chunk order,
// so the result does not depend on the number of workers.
func linCombG1(pool *workerpool.WorkerPool, points []curve.G1Point, scalars []curve.Fr) (*curve.G1Point, error) {
	if len(points) != len(scalars) {
		return nil, errors.Newf("linear combination of %d points with %d scalars", len(points), len(scalars))
	}

	count, _ := rangeChunks(pool, len(points))
	partials := make([]curve.G1Point, count)
	if err := parallelChunks(pool, len(points), func(chunk, from, to int) {
		partials[chunk] = *curve.LinCombG1(points[from:to], scalars[from:to])
	}); err != nil {
		return nil, errors.Wrap(err, "linear combination failed")
	}

	result := curve.G1Identity()
	for i := range partials {
		result.Add(result, &partials[i])
	}

	return result, nil
}
