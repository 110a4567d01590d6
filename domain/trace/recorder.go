package trace

import (
	"sync"

	"github.com/google/uuid"

	"hierlogit/domain/model"
	"hierlogit/internal/errors"
)

// Recorder collects the derived quantities of accepted samples, one stream
// per chain. Recording is the host engine's choice; the model itself never
// persists anything between evaluations. A Recorder is safe for concurrent
// use by chains running in parallel, since each chain appends to its own
// stream under the shared lock.
type Recorder struct {
	mu     sync.Mutex
	runID  uuid.UUID
	chains [][]model.Derived
}

// NewRecorder creates a recorder for the given number of chains.
func NewRecorder(chains int) (*Recorder, error) {
	if chains < 1 {
		return nil, errors.InvalidInput("at least one chain is required")
	}
	return &Recorder{
		runID:  uuid.New(),
		chains: make([][]model.Derived, chains),
	}, nil
}

// RunID identifies this recording run.
func (r *Recorder) RunID() uuid.UUID {
	return r.runID
}

// Chains returns the number of chains being recorded.
func (r *Recorder) Chains() int {
	return len(r.chains)
}

// Record appends an accepted sample's derived quantities to a chain.
func (r *Recorder) Record(chain int, d model.Derived) error {
	if chain < 0 || chain >= len(r.chains) {
		return errors.InvalidInput("chain index out of range")
	}
	r.mu.Lock()
	r.chains[chain] = append(r.chains[chain], d)
	r.mu.Unlock()
	return nil
}

// Len returns the number of recorded draws for a chain.
func (r *Recorder) Len(chain int) int {
	if chain < 0 || chain >= len(r.chains) {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chains[chain])
}

// LastDraw extracts the most recent accepted draw of each chain, for warm
// restarts of an interrupted run. The second return reports, per chain,
// whether anything has been recorded yet.
func (r *Recorder) LastDraw() ([]model.Derived, []bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	last := make([]model.Derived, len(r.chains))
	ok := make([]bool, len(r.chains))
	for c, draws := range r.chains {
		if len(draws) > 0 {
			last[c] = draws[len(draws)-1]
			ok[c] = true
		}
	}
	return last, ok
}

// Draws returns a copy of the recorded draws for a chain.
func (r *Recorder) Draws(chain int) []model.Derived {
	if chain < 0 || chain >= len(r.chains) {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Derived, len(r.chains[chain]))
	copy(out, r.chains[chain])
	return out
}
