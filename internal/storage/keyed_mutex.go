package storage

import "sync"

// keyedMutex по одному мьютексу на DayKey.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[DayKey]*sync.Mutex
}

func (k *keyedMutex) lock(key DayKey) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[DayKey]*sync.Mutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
