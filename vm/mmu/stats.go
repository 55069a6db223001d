package mmu

// Stats accumulates the translation counters for a run. They are created at
// run start, mutated only by the translator, and read once for the summary.
type Stats struct {
	Translations uint64
	TLBHits      uint64
	TLBMisses    uint64
	PageFaults   uint64
	NoFaults     uint64
}

// TLBHitRate returns the fraction of translations served from the
// translation cache.
func (s Stats) TLBHitRate() float64 {
	if s.Translations == 0 {
		return 0
	}

	return float64(s.TLBHits) / float64(s.Translations)
}

// PageFaultRate returns the fraction of translations that faulted.
func (s Stats) PageFaultRate() float64 {
	if s.Translations == 0 {
		return 0
	}

	return float64(s.PageFaults) / float64(s.Translations)
}

func (c *Comp) recordTranslation(trans Translation) {
	c.statsLock.Lock()
	defer c.statsLock.Unlock()

	c.stats.Translations++

	if trans.TLBHit {
		c.stats.TLBHits++
	} else {
		c.stats.TLBMisses++
	}

	if trans.PageFault {
		c.stats.PageFaults++
	} else {
		c.stats.NoFaults++
	}
}

// Stats returns a snapshot of the translation counters. The monitor may call
// it from another goroutine while a run is in progress.
func (c *Comp) Stats() Stats {
	c.statsLock.Lock()
	defer c.statsLock.Unlock()

	return c.stats
}
