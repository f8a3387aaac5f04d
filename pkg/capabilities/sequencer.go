package capabilities

import (
	"context"
	"errors"
	"fmt"

	"github.com/nationalmap/px3-catalog-server/internal/logger"
	"github.com/nationalmap/px3-catalog-server/pkg/layers"
	"github.com/nationalmap/px3-catalog-server/pkg/px3"
)

// ErrUnknownService is returned when the fetch queue names a service id
// absent from the catalog.
var ErrUnknownService = errors.New("unknown service")

// FetchError reports the service whose capabilities fetch halted the
// sequence.
type FetchError struct {
	ServiceID string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching capabilities for service %q: %v", e.ServiceID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// State is the sequencer's position in its fetch cycle.
type State int

const (
	// StateIdle means no sequence has started
	StateIdle State = iota

	// StateFetching means one request is outstanding
	StateFetching

	// StateAccumulating means the last response is being turned into a
	// descriptor
	StateAccumulating

	// StateDone means the sequence completed and the callback ran
	StateDone
)

// DocumentFetcher retrieves one capabilities document.
type DocumentFetcher interface {
	Fetch(ctx context.Context, serviceURL string) (*layers.Capabilities, error)
}

// CompletionFunc receives the full accumulated descriptor mapping once every
// queued service has one.
type CompletionFunc func(map[string]*layers.Descriptor)

// Sequencer drives the remote-fetch then descriptor-build step for every
// service that needs a composite background layer, one service at a time.
// At most one fetch is ever outstanding; total latency is the sum of the
// per-service round trips. A Sequencer runs one sequence at a time and is not
// safe for concurrent use.
type Sequencer struct {
	fetcher DocumentFetcher
	factory *layers.Factory
	opts    layers.BuildOptions
	state   State
}

// NewSequencer creates a Sequencer. A nil fetcher gets the default HTTP
// fetcher.
func NewSequencer(fetcher DocumentFetcher, factory *layers.Factory, opts layers.BuildOptions) *Sequencer {
	if fetcher == nil {
		fetcher = NewFetcher(nil)
	}
	if factory == nil {
		factory = layers.NewFactory()
	}
	return &Sequencer{fetcher: fetcher, factory: factory, opts: opts}
}

// State returns the sequencer's current state.
func (s *Sequencer) State() State {
	return s.state
}

// Run fetches capabilities for each id in order, builds the descriptor, and
// accumulates it keyed by service id. When every id has a descriptor the
// completion callback is invoked exactly once with the full mapping. On a
// fetch failure the sequence logs, stops advancing, and returns a
// *FetchError; the completion callback does not run. There is no retry and
// no timeout at this layer; timeout policy belongs to the transport.
func (s *Sequencer) Run(ctx context.Context, tree *px3.ConfigTree, ids []string, complete CompletionFunc) error {
	accumulated := make(map[string]*layers.Descriptor, len(ids))

	for _, id := range ids {
		svc, ok := tree.Services[id]
		if !ok {
			return &FetchError{ServiceID: id, Err: ErrUnknownService}
		}

		s.state = StateFetching
		caps, err := s.fetcher.Fetch(ctx, svc.URL)
		if err != nil {
			logger.Errorf("Layer could not be created for service %s: %v", id, err)
			return &FetchError{ServiceID: id, Err: err}
		}

		s.state = StateAccumulating
		accumulated[id] = s.factory.Build(svc, caps, s.opts)
	}

	s.state = StateDone
	complete(accumulated)
	return nil
}
