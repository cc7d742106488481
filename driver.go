package memscrub

// AutoScrubPolicy decides how many bytes to scrub on each iteration of
// an AutoScrubDriver's run. Returning zero ends the run.
type AutoScrubPolicy interface {
	NextChunk() uint64
}

// AutoScrubDriver repeatedly drives a Scrubber according to an
// AutoScrubPolicy.
type AutoScrubDriver struct {
	scrubber *Scrubber
}

// NewAutoScrubDriver wraps scrubber for policy-driven repeated scrubbing.
func NewAutoScrubDriver(scrubber *Scrubber) *AutoScrubDriver {
	return &AutoScrubDriver{scrubber: scrubber}
}

// Run calls policy.NextChunk() and scrubs that many bytes, repeating
// until NextChunk returns zero or a Scrub call errors.
func (d *AutoScrubDriver) Run(policy AutoScrubPolicy) error {
	for {
		n := policy.NextChunk()
		if n == 0 {
			return nil
		}
		if err := d.scrubber.Scrub(n); err != nil {
			return err
		}
	}
}

// RunAutoScrub is the one-shot convenience form: build a Scrubber over
// geom and regions, then drive it with policy until it is done.
func RunAutoScrub(geom CacheGeometry, regions []ScrubRegion, policy AutoScrubPolicy) error {
	s, err := New(geom, regions)
	if err != nil {
		return err
	}
	return NewAutoScrubDriver(s).Run(policy)
}
