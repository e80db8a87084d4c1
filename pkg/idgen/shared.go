package idgen

import "sync"

var (
	sharedMu  sync.Mutex
	sharedGen *Snowflake
)

// Shared returns the process-wide generator, creating it from cfg on the first successful
// call. Later calls return that instance and ignore their arguments. A failed construction
// is not remembered, so a later call may retry with a corrected Config.
func Shared(cfg Config, opts ...Option) (*Snowflake, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedGen != nil {
		return sharedGen, nil
	}

	s, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	sharedGen = s
	return s, nil
}
