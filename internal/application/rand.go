package application

import (
	"math/rand"
	"sync"
)

// LockedRand wraps math/rand.Rand with a mutex so one source can be shared
// by concurrent requests.
type LockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{rnd: rand.New(rand.NewSource(seed))}
}

func (r *LockedRand) Uniform(low, high float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return low + r.rnd.Float64()*(high-low)
}
