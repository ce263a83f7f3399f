// SPDX-License-Identifier: MIT
package orgchart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"gitlab.com/fisherprime/orgchart/types"
)

type (
	// Store holds the process-wide Relation & the Forest derived from it.
	//
	// Every update replaces both atomically, the Forest is rebuilt rather than patched. Readers
	// obtain a copy of the Relation & a shared, read-only Forest.
	Store[T Constraint] struct {
		cfg      *Config
		strict   bool
		poolSize int
		diagnose DiagnosticFunc[T]

		// pool notifies subscribers of new Forests.
		pool *ants.Pool

		mu          sync.RWMutex
		relation    Relation[T]
		forest      Forest[T]
		subscribers []Subscriber[T]

		revision types.SafeCounter
	}

	// Subscriber is notified of each Forest the Store derives, alongside its revision.
	//
	// The Forest is shared between subscribers & must not be modified.
	Subscriber[T Constraint] func(ctx context.Context, forest Forest[T], revision int) error

	// StoreOption defines the Store functional option type.
	StoreOption[T Constraint] func(*Store[T])
)

const (
	defPoolSize = 8
)

// Store errors.
var (
	ErrFetchRelation = errors.New("failed to fetch relation")
	ErrNotify        = errors.New("failed to notify subscribers")
	ErrPanicked      = errors.New("recovery from panic")
)

// NewStore instantiates an empty Store.
func NewStore[T Constraint](options ...StoreOption[T]) (s *Store[T], err error) {
	s = &Store[T]{
		cfg:      defConfig,
		poolSize: defPoolSize,
		relation: Relation[T]{},
		forest:   Forest[T]{},
	}

	for _, opt := range options {
		opt(s)
	}

	s.cfg = s.cfg.resolve()

	if s.pool, err = ants.NewPool(s.poolSize, ants.WithLogger(s.cfg.Logger)); err != nil {
		err = fmt.Errorf("store worker pool: %w", err)
		return nil, err
	}

	return
}

// WithStoreConfig configures the Store's Config.
func WithStoreConfig[T Constraint](cfg *Config) StoreOption[T] {
	return func(s *Store[T]) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithStrict rejects Relations failing Validate.
func WithStrict[T Constraint](strict bool) StoreOption[T] {
	return func(s *Store[T]) { s.strict = strict }
}

// WithPoolSize configures the amount of concurrently notified subscribers.
func WithPoolSize[T Constraint](size int) StoreOption[T] {
	return func(s *Store[T]) {
		if size > 0 {
			s.poolSize = size
		}
	}
}

// WithStoreDiagnostics registers a handler for Diagnostics raised while rebuilding Forests.
func WithStoreDiagnostics[T Constraint](fn DiagnosticFunc[T]) StoreOption[T] {
	return func(s *Store[T]) { s.diagnose = fn }
}

// Close releases the Store's worker pool.
func (s *Store[T]) Close() { s.pool.Release() }

// Subscribe registers a Subscriber for subsequent updates.
func (s *Store[T]) Subscribe(sub Subscriber[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = append(s.subscribers, sub)
}

// Relation obtains a copy of the current Relation.
func (s *Store[T]) Relation() Relation[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.relation.Clone()
}

// Forest obtains the current Forest.
func (s *Store[T]) Forest() Forest[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.forest
}

// Revision obtains the number of updates applied to the Store.
func (s *Store[T]) Revision() int { return s.revision.Value() }

// Load fetches a Relation from src & replaces the Store's content with it.
func (s *Store[T]) Load(ctx context.Context, src Source[T]) (err error) {
	relation, err := src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetchRelation, err)
	}

	return s.Set(ctx, relation)
}

// Set replaces the Store's content with a copy of relation.
func (s *Store[T]) Set(ctx context.Context, relation Relation[T]) (err error) {
	if relation == nil {
		relation = Relation[T]{}
	}

	_, err = s.update(ctx, func(Relation[T]) (Relation[T], bool) { return relation.Clone(), true })

	return
}

// Reset empties the Store.
func (s *Store[T]) Reset(ctx context.Context) error { return s.Set(ctx, nil) }

// Remove excises target from the Store's Relation, re-parenting its subordinates.
//
// An absent target leaves the Store untouched & reports removed as false.
func (s *Store[T]) Remove(ctx context.Context, target Record[T]) (removed bool, err error) {
	return s.update(ctx, func(current Relation[T]) (Relation[T], bool) {
		if _, ok := current.Find(target.ID); !ok {
			return nil, false
		}

		return Remove(current, target, WithConfig[T](s.cfg)), true
	})
}

// RemoveByID excises the Record identified by id, re-parenting its subordinates to its manager.
func (s *Store[T]) RemoveByID(ctx context.Context, id T) (removed bool, err error) {
	return s.update(ctx, func(current Relation[T]) (Relation[T], bool) {
		if _, ok := current.Find(id); !ok {
			return nil, false
		}

		return RemoveByID(current, id, WithConfig[T](s.cfg)), true
	})
}

// update swaps in the Relation computed by fn & its Forest, notifying subscribers.
//
// fn reports false to leave the Store untouched.
func (s *Store[T]) update(ctx context.Context, fn func(Relation[T]) (Relation[T], bool)) (applied bool, err error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	s.mu.Lock()

	relation, applied := fn(s.relation)
	if !applied {
		s.mu.Unlock()
		return
	}

	if s.strict {
		if err = Validate(relation); err != nil {
			s.mu.Unlock()
			return false, err
		}
	}

	options := []Option[T]{WithConfig[T](s.cfg)}
	if s.diagnose != nil {
		options = append(options, WithDiagnostics(s.diagnose))
	}

	forest := BuildForest(relation, options...)
	s.relation, s.forest = relation, forest
	revision := s.revision.Inc()

	subscribers := make([]Subscriber[T], len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	if s.cfg.Debug {
		s.cfg.Logger.Debugf("store revision %d: %d records, %d roots", revision, len(relation), len(forest))
	}

	err = s.notify(ctx, subscribers, forest, revision)

	return
}

// notify fans the Forest out to subscribers on the worker pool, collecting their errors.
func (s *Store[T]) notify(ctx context.Context, subscribers []Subscriber[T], forest Forest[T], revision int) (err error) {
	if len(subscribers) < 1 {
		return
	}

	done := make(chan struct{}, len(subscribers))
	errChan := make(chan error, len(subscribers))

	for _, sub := range subscribers {
		if submitErr := s.pool.Submit(func() {
			defer func() {
				if r := recover(); r != nil {
					errChan <- fmt.Errorf("%w: %v", ErrPanicked, r)
				}
			}()

			if subErr := sub(ctx, forest, revision); subErr != nil {
				errChan <- subErr
				return
			}
			done <- struct{}{}
		}); submitErr != nil {
			errChan <- submitErr
		}
	}

	if err = types.MonitorChannels(ctx, len(subscribers), done, errChan, "subscriber"); err != nil {
		s.cfg.Logger.WithField("revision", revision).Warnf("notify: %v", err)
		err = fmt.Errorf("%w: %w", ErrNotify, err)
	}

	return
}
