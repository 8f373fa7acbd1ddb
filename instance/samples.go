package instance

import "fmt"

// Samples is the ordered seed list of one instance and the realizations
// cached for the current seeds.
//
// Samples is not safe for concurrent mutation. Realize and Rotate run
// between evaluation phases; Realization may then be read concurrently.
type Samples struct {
	inst  *Instance
	seeds []int64
	reals []*Realization
}

// NewSamples wraps an instance and its seeds. Nothing is realized yet.
func NewSamples(inst *Instance, seeds ...int64) *Samples {
	s := &Samples{inst: inst, seeds: append([]int64(nil), seeds...)}
	s.reals = make([]*Realization, len(s.seeds))

	return s
}

// SeedSequence returns count seeds start, start+gap, ... with
// gap = SeedGapInstance, and the seed that would follow them. Experiments
// with several instances chain the returned next seed.
func SeedSequence(start int64, count int) (seeds []int64, next int64) {
	seeds = make([]int64, count)
	next = start
	for i := range seeds {
		seeds[i] = next
		next += SeedGapInstance
	}

	return seeds, next
}

// Instance returns the base instance.
func (s *Samples) Instance() *Instance { return s.inst }

// Len returns the number of samples.
func (s *Samples) Len() int { return len(s.seeds) }

// Seed returns the i-th seed.
func (s *Samples) Seed(i int) int64 { return s.seeds[i] }

// Seeds returns a copy of the current seeds.
func (s *Samples) Seeds() []int64 { return append([]int64(nil), s.seeds...) }

// Realize samples every seed that has no cached realization.
func (s *Samples) Realize() error {
	for i, seed := range s.seeds {
		if s.reals[i] != nil {
			continue
		}
		r, err := s.inst.Realize(seed)
		if err != nil {
			return err
		}
		s.reals[i] = r
	}

	return nil
}

// Realization returns the i-th cached realization. It fails with
// ErrNotRealized if Realize has not run since the last Rotate.
func (s *Samples) Realization(i int) (*Realization, error) {
	if i < 0 || i >= len(s.seeds) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSampleOutOfRange, i, len(s.seeds))
	}
	if s.reals[i] == nil {
		return nil, fmt.Errorf("%w: sample %d seed %d", ErrNotRealized, i, s.seeds[i])
	}

	return s.reals[i], nil
}

// Rotate advances every seed by SeedGapRotation and drops cached
// realizations.
func (s *Samples) Rotate() {
	for i := range s.seeds {
		s.seeds[i] += SeedGapRotation
		s.reals[i] = nil
	}
}
