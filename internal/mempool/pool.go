// Package mempool provides sized buffer pools for the per-pixel filter
// hot paths. Every preprocessing variant of a document allocates scratch
// buffers proportional to the image area; pooling them keeps the strategy
// battery from churning the garbage collector on batch runs.
package mempool

import (
	"sync"
)

var (
	float64Pools sync.Map // key: size class (int), value: *sync.Pool
	uint64Pools  sync.Map // key: size class (int), value: *sync.Pool
)

// sizeClass rounds n up to the next multiple of 4096 to reduce churn.
func sizeClass(n int) int {
	const step = 4096
	if n <= step {
		return step
	}
	r := (n + step - 1) / step
	return r * step
}

// GetFloat64 retrieves a []float64 buffer of at least n elements from the
// pool. The returned slice has length n but may have larger capacity, and
// carries whatever values the previous user left behind. The caller must
// return it via PutFloat64 when done.
func GetFloat64(n int) []float64 {
	cls := sizeClass(n)
	pAny, _ := float64Pools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]float64, cls) }})
	p, ok := pAny.(*sync.Pool)
	if !ok {
		return make([]float64, n)
	}
	buf, ok := p.Get().([]float64)
	if !ok || cap(buf) < n {
		buf = make([]float64, cls)
	}
	return buf[:n]
}

// PutFloat64 returns a buffer obtained from GetFloat64 to the pool.
func PutFloat64(buf []float64) {
	if buf == nil {
		return
	}
	cls := sizeClass(cap(buf))
	if pAny, ok := float64Pools.Load(cls); ok {
		if p, ok := pAny.(*sync.Pool); ok {
			p.Put(buf[:cap(buf)]) //nolint:staticcheck // SA6002: slice header allocation is acceptable here
		}
	}
}

// GetUint64 retrieves a []uint64 buffer of at least n elements from the
// pool, zeroed. The caller must return it via PutUint64 when done.
func GetUint64(n int) []uint64 {
	cls := sizeClass(n)
	pAny, _ := uint64Pools.LoadOrStore(cls, &sync.Pool{New: func() any { return make([]uint64, cls) }})
	p, ok := pAny.(*sync.Pool)
	if !ok {
		return make([]uint64, n)
	}
	buf, ok := p.Get().([]uint64)
	if !ok || cap(buf) < n {
		buf = make([]uint64, cls)
	}
	buf = buf[:n]
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// PutUint64 returns a buffer obtained from GetUint64 to the pool.
func PutUint64(buf []uint64) {
	if buf == nil {
		return
	}
	cls := sizeClass(cap(buf))
	if pAny, ok := uint64Pools.Load(cls); ok {
		if p, ok := pAny.(*sync.Pool); ok {
			p.Put(buf[:cap(buf)]) //nolint:staticcheck // SA6002: slice header allocation is acceptable here
		}
	}
}
