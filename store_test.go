// SPDX-License-Identifier: MIT
package orgchart

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, options ...StoreOption[int]) *Store[int] {
	t.Helper()

	logger, _ := test.NewNullLogger()
	options = append([]StoreOption[int]{WithStoreConfig[int](&Config{Logger: logger})}, options...)

	s, err := NewStore(options...)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	return s
}

func TestStore_Empty(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, Relation[int]{}, s.Relation())
	assert.Equal(t, Forest[int]{}, s.Forest())
	assert.Zero(t, s.Revision())
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	relation := Relation[int]{rec(1, 0), rec(2, 1), rec(3, 1)}
	require.NoError(t, s.Load(ctx, Static(relation)))

	assert.Equal(t, relation, s.Relation())
	assert.Equal(t, BuildForest(relation), s.Forest())
	assert.Equal(t, 1, s.Revision())

	// The Store holds its own copy.
	relation[0].ManagerID = 9
	assert.Equal(t, 0, s.Relation()[0].ManagerID)

	snapshot := s.Relation()
	snapshot[1].ManagerID = 9
	assert.Equal(t, 1, s.Relation()[1].ManagerID)
}

func TestStore_LoadError(t *testing.T) {
	s := newTestStore(t)
	errBroken := errors.New("broken")

	err := s.Load(context.Background(), SourceFunc[int](func(context.Context) (Relation[int], error) {
		return nil, errBroken
	}))

	assert.ErrorIs(t, err, ErrFetchRelation)
	assert.ErrorIs(t, err, errBroken)
	assert.Zero(t, s.Revision())
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Set(ctx, Relation[int]{rec(1, 0), rec(2, 1), rec(3, 2)}))

	removed, err := s.Remove(ctx, rec(2, 1))
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, Relation[int]{rec(1, 0), rec(3, 1)}, s.Relation())
	assert.Equal(t, Forest[int]{node(1, 0, node(3, 1))}, s.Forest())
	assert.Equal(t, 2, s.Revision())

	removed, err = s.Remove(ctx, rec(2, 1))
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 2, s.Revision(), "absent target changed the revision")

	removed, err = s.RemoveByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, Relation[int]{rec(3, 0)}, s.Relation())

	require.NoError(t, s.Reset(ctx))
	assert.Equal(t, Relation[int]{}, s.Relation())
	assert.Equal(t, Forest[int]{}, s.Forest())
	assert.Equal(t, 4, s.Revision())
}

func TestStore_Strict(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, WithStrict[int](true))

	require.NoError(t, s.Set(ctx, Relation[int]{rec(1, 0), rec(2, 1)}))

	err := s.Set(ctx, Relation[int]{rec(1, 2), rec(2, 1)})
	assert.ErrorIs(t, err, ErrCyclicRelation)

	err = s.Set(ctx, Relation[int]{rec(1, 0), rec(1, 0)})
	assert.ErrorIs(t, err, ErrDuplicateID)

	assert.Equal(t, Relation[int]{rec(1, 0), rec(2, 1)}, s.Relation(), "rejected relation was applied")
	assert.Equal(t, 1, s.Revision())
}

func TestStore_Diagnostics(t *testing.T) {
	var diags []Diagnostic[int]
	s := newTestStore(t, WithStoreDiagnostics(CollectDiagnostics(&diags)))

	require.NoError(t, s.Set(context.Background(), Relation[int]{rec(1, 0), rec(2, 5)}))
	assert.Equal(t, []Diagnostic[int]{{Kind: DiagOrphan, ID: 2, ManagerID: 5}}, diags)
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, WithPoolSize[int](2))

	var (
		mu        sync.Mutex
		revisions []int
		calls     atomic.Int32
	)
	for index := 0; index < 3; index++ {
		s.Subscribe(func(_ context.Context, forest Forest[int], revision int) error {
			calls.Add(1)

			mu.Lock()
			defer mu.Unlock()
			revisions = append(revisions, revision)

			if forest.Count() != 2 {
				return errors.New("unexpected forest")
			}

			return nil
		})
	}

	require.NoError(t, s.Set(ctx, Relation[int]{rec(1, 0), rec(2, 1)}))
	assert.EqualValues(t, 3, calls.Load())
	assert.Equal(t, []int{1, 1, 1}, revisions)
}

func TestStore_SubscriberErrors(t *testing.T) {
	ctx := context.Background()
	errSubscriber := errors.New("subscriber failed")

	logger, hook := test.NewNullLogger()
	s, err := NewStore(WithStoreConfig[int](&Config{Logger: logger}))
	require.NoError(t, err)
	defer s.Close()

	s.Subscribe(func(context.Context, Forest[int], int) error { return nil })
	s.Subscribe(func(context.Context, Forest[int], int) error { return errSubscriber })
	s.Subscribe(func(context.Context, Forest[int], int) error { panic("boom") })

	err = s.Set(ctx, Relation[int]{rec(1, 0)})
	assert.ErrorIs(t, err, ErrNotify)
	assert.ErrorIs(t, err, errSubscriber)
	assert.ErrorIs(t, err, ErrPanicked)

	// The update is applied regardless.
	assert.Equal(t, Relation[int]{rec(1, 0)}, s.Relation())
	assert.Equal(t, 1, s.Revision())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, 1, hook.LastEntry().Data["revision"])
}

func TestStore_Cancelled(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Set(ctx, Relation[int]{rec(1, 0)}), context.Canceled)
	assert.Zero(t, s.Revision())
}

func TestStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	relation := make(Relation[int], 0, 100)
	for id := 1; id <= 100; id++ {
		relation = append(relation, rec(id, id-1))
	}
	require.NoError(t, s.Set(ctx, relation))

	var wg sync.WaitGroup
	for id := 1; id <= 50; id++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			_, _ = s.RemoveByID(ctx, id)
		}(id)
		go func() {
			defer wg.Done()
			forest := s.Forest()
			_ = forest.Count()
		}()
	}
	wg.Wait()

	assert.Len(t, s.Relation(), 50)
	assert.Equal(t, 51, s.Revision())
	require.Len(t, s.Forest(), 1)
	assert.Equal(t, 51, s.Forest()[0].Value())
}

func TestStore_ConfigUntouched(t *testing.T) {
	cfg := &Config{}

	s, err := NewStore(WithStoreConfig[int](cfg))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(context.Background(), Relation[int]{rec(1, 0)}))
	assert.Nil(t, cfg.Logger)
}
