package artifacts

import (
	"sync/atomic"

	"gpapredict/ml"
)

type snapshot struct {
	runtime *ml.Runtime
	err     error
}

// Holder publishes the current runtime, or the error that prevented loading
// one. Readers never block; each snapshot is immutable.
type Holder struct {
	current atomic.Pointer[snapshot]
}

func NewHolder(runtime *ml.Runtime, err error) *Holder {
	h := &Holder{}
	h.Set(runtime, err)
	return h
}

// Current returns the runtime or the load error. It never returns a nil
// runtime with a nil error.
func (h *Holder) Current() (*ml.Runtime, error) {
	s := h.current.Load()
	if s == nil || (s.runtime == nil && s.err == nil) {
		return nil, ml.ErrArtifactMissing
	}
	return s.runtime, s.err
}

func (h *Holder) Set(runtime *ml.Runtime, err error) {
	h.current.Store(&snapshot{runtime: runtime, err: err})
}
