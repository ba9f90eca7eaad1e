package steering

// Pool is a fixed-size allocator for memory-entry payloads. Each agent
// owns its own pool, so access is single-writer by construction. When
// every slot is live, Acquire falls back to a one-off heap allocation
// and counts it; the fallback is never fatal.
type Pool struct {
	slots     []Payload
	free      []int
	fallbacks uint64
}

// NewPool preallocates size payload slots. Size is clamped to at least 1.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{
		slots: make([]Payload, size),
		free:  make([]int, 0, size),
	}
	for i := size - 1; i >= 0; i-- {
		p.free = append(p.free, i)
	}
	return p
}

// Acquire returns a payload slot and its index, or a heap-allocated
// payload with index -1 when the pool is exhausted.
func (p *Pool) Acquire() (*Payload, int) {
	if p == nil || len(p.free) == 0 {
		if p != nil {
			p.fallbacks++
		}
		return &Payload{}, -1
	}
	idx := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	slot := &p.slots[idx]
	*slot = Payload{}
	return slot, idx
}

// Release returns a pooled slot to the free list. Heap fallbacks
// (index -1) are left to the garbage collector.
func (p *Pool) Release(idx int) {
	if p == nil || idx < 0 || idx >= len(p.slots) {
		return
	}
	p.free = append(p.free, idx)
}

// Free reports how many slots are currently available.
func (p *Pool) Free() int {
	if p == nil {
		return 0
	}
	return len(p.free)
}

// Size reports the fixed slot count.
func (p *Pool) Size() int {
	if p == nil {
		return 0
	}
	return len(p.slots)
}

// Fallbacks reports how many acquisitions overflowed to the heap.
func (p *Pool) Fallbacks() uint64 {
	if p == nil {
		return 0
	}
	return p.fallbacks
}
