package console

import "context"

// selection implements "last request wins" for one panel. Each new fetch
// cancels the previous one and gets a generation number; a result is
// applied only while its generation is still current. Navigation advances
// the generation without starting a fetch. Callers hold the panel's lock.
type selection struct {
	gen    uint64
	cancel context.CancelFunc
}

// begin cancels the in-flight fetch and returns the context and
// generation for a new one.
func (s *selection) begin(ctx context.Context) (context.Context, uint64) {
	s.navigate()
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	return ctx, s.gen
}

// navigate cancels the in-flight fetch and invalidates its result.
func (s *selection) navigate() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}

// current reports whether gen is still the latest generation.
func (s *selection) current(gen uint64) bool {
	return s.gen == gen
}

// finish releases the context of the fetch with generation gen, if it is
// still the current one.
func (s *selection) finish(gen uint64) {
	if s.gen == gen && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
