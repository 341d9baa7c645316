package lru

// Stats holds the cache counters. Peek, Contains and Oldest are not counted.
type Stats struct {
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	Loads      uint64
	LoadErrors uint64
}

// HitRatio returns hits over lookups, 0 when nothing was looked up.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}
