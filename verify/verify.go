package verify

import (
	"sync"

	"github.com/mm-verify/mm/db"
)

// config holds Verify's optional settings, built from functional Options.
type config struct {
	workers int
	onStart func(db.LabelID)
}

// Option configures a Verify call.
type Option func(*config)

// WithWorkers enables concurrent verification across independent
// provables, using n worker goroutines. Verification of one provable never
// touches another's state (each reads only the immutable Database and its
// own frozen Assertion.Scope), so this is safe; it is opt-in because the
// spec treats parallel verification as optional, not because of any
// correctness risk. n <= 1 runs sequentially.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithOnStart registers a callback invoked with a provable's label right
// before that provable's proof replay begins, letting a caller (e.g. a CLI
// running at a verbose log level) trace progress without Verify itself
// depending on a logger. Under WithWorkers(n>1) it may be called from
// multiple goroutines concurrently.
func WithOnStart(fn func(db.LabelID)) Option {
	return func(c *config) { c.onStart = fn }
}

// Verify replays every provable in database, in declaration order, against
// its frozen scope. It stops at the first ProofError, matching the
// first-error-aborts policy; UNKNOWN/`?` steps do not abort, they mark
// that provable Incomplete and verification continues.
func Verify(database *db.Database, opts ...Option) (*Result, error) {
	cfg := &config{workers: 1}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.workers > 1 {
		return verifyConcurrent(database, cfg.workers, cfg.onStart)
	}
	return verifySequential(database, cfg.onStart)
}

func verifyOne(database *db.Database, a *db.Assertion) (Outcome, error) {
	if a.Kind == db.KindAxiom {
		return Verified, nil
	}
	steps, err := decodeProof(database, a)
	if err != nil {
		return 0, err
	}
	m := newMachine(database, a)
	for i, s := range steps {
		incomplete, err := m.step(i, s)
		if err != nil {
			return 0, err
		}
		if incomplete {
			return Incomplete, nil
		}
	}
	if err := m.finish(); err != nil {
		return 0, err
	}
	return Verified, nil
}

func verifySequential(database *db.Database, onStart func(db.LabelID)) (*Result, error) {
	result := &Result{}
	for _, a := range database.Provables {
		if onStart != nil {
			onStart(a.Label)
		}
		outcome, err := verifyOne(database, a)
		if err != nil {
			return nil, err
		}
		result.record(a.Label, outcome)
	}
	return result, nil
}

// verifyConcurrent fans provables out across workers goroutines. Results
// are collected in declaration order regardless of completion order; the
// first ProofError observed (by index) is returned, mirroring the
// sequential path's first-error-aborts semantics as closely as a
// parallel scan allows.
func verifyConcurrent(database *db.Database, workers int, onStart func(db.LabelID)) (*Result, error) {
	provables := database.Provables
	outcomes := make([]Outcome, len(provables))
	errs := make([]error, len(provables))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if onStart != nil {
					onStart(provables[idx].Label)
				}
				outcome, err := verifyOne(database, provables[idx])
				outcomes[idx] = outcome
				errs[idx] = err
			}
		}()
	}
	for idx := range provables {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	result := &Result{}
	for idx, a := range provables {
		if errs[idx] != nil {
			return nil, errs[idx]
		}
		result.record(a.Label, outcomes[idx])
	}
	return result, nil
}
