package core_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinstack/pinstack/pkg/core"
)

// stubStateStore implements core.StateStore in memory. It deliberately does
// not fail: the outward save/load contract never does either.
type stubStateStore struct {
	mu    sync.Mutex
	data  map[string][]byte
	saves int
}

func newStubStateStore() *stubStateStore {
	return &stubStateStore{data: make(map[string][]byte)}
}

func (s *stubStateStore) Save(ctx context.Context, key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.data[key] = data
	s.saves++
}

func (s *stubStateStore) Load(ctx context.Context, key string, dst any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func (s *stubStateStore) preload(t *testing.T, key string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
}

func (s *stubStateStore) get(t *testing.T, key string, dst any) {
	t.Helper()
	s.mu.Lock()
	data, ok := s.data[key]
	s.mu.Unlock()
	require.True(t, ok, "expected record %q", key)
	require.NoError(t, json.Unmarshal(data, dst))
}

func newTestService(store core.StateStore) *core.Service {
	return core.NewService(core.ServiceConfig{
		Store: store,
		Collection: core.CollectionConfig{
			Rand:  func(n int) int { return 0 },
			NewID: seqIDs(),
		},
	})
}

func TestService_LoadStateDefaults(t *testing.T) {
	store := newStubStateStore()
	svc := newTestService(store)
	svc.LoadState(context.Background())

	// Nothing persisted: the seeded defaults survive.
	require.Equal(t, 1, len(svc.Boards()))
	assert.Equal(t, svc.Boards()[0].ID, svc.ActiveID())
	assert.Equal(t, core.DefaultTextStyle(), svc.TextStyle())
}

func TestService_LoadStateRestoresRecords(t *testing.T) {
	store := newStubStateStore()
	store.preload(t, core.KeyBoards, []core.Board{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B"},
	})
	store.preload(t, core.KeyActive, "b")
	style := core.TextStyle{FontSize: 24, FontFamily: "mono", Align: core.AlignCenter, Color: "navy"}
	store.preload(t, core.KeyTextStyle, style)

	svc := newTestService(store)
	svc.LoadState(context.Background())

	require.Equal(t, 2, len(svc.Boards()))
	assert.Equal(t, "b", svc.ActiveID())
	assert.Equal(t, style, svc.TextStyle())
}

func TestService_LoadStateRepairsDanglingActive(t *testing.T) {
	store := newStubStateStore()
	store.preload(t, core.KeyBoards, []core.Board{{ID: "a", Title: "A"}})
	store.preload(t, core.KeyActive, "deleted-long-ago")

	svc := newTestService(store)
	svc.LoadState(context.Background())

	assert.Equal(t, "a", svc.ActiveID())
}

func TestService_FlushWritesAllRecords(t *testing.T) {
	store := newStubStateStore()
	svc := newTestService(store)
	svc.UpdateContent(svc.ActiveID(), "draft")

	svc.Flush(context.Background())

	var boards []core.Board
	store.get(t, core.KeyBoards, &boards)
	require.Len(t, boards, 1)
	assert.Equal(t, "draft", boards[0].Content)

	var active string
	store.get(t, core.KeyActive, &active)
	assert.Equal(t, svc.ActiveID(), active)

	var style core.TextStyle
	store.get(t, core.KeyTextStyle, &style)
	assert.Equal(t, core.DefaultTextStyle(), style)
}

func TestService_CloseFlushesWithoutPolicy(t *testing.T) {
	store := newStubStateStore()
	svc := newTestService(store)
	svc.UpdateTitle(svc.ActiveID(), "unsaved")

	require.NoError(t, svc.Close(context.Background()))

	var boards []core.Board
	store.get(t, core.KeyBoards, &boards)
	assert.Equal(t, "unsaved", boards[0].Title)
}

// recordingPolicy captures scheduler notifications.
type recordingPolicy struct {
	mu       sync.Mutex
	kinds    []core.ChangeKind
	suspends int
	closed   bool
}

func (p *recordingPolicy) Mutated(kind core.ChangeKind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kinds = append(p.kinds, kind)
}

func (p *recordingPolicy) Suspend() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.suspends++
}

func (p *recordingPolicy) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func TestService_MutationsReachThePolicy(t *testing.T) {
	store := newStubStateStore()
	svc := newTestService(store)
	policy := &recordingPolicy{}
	svc.AttachPolicy(policy)

	b := svc.CreateBoard()
	svc.UpdateContent(b.ID, "x")
	svc.SetTextStyle(core.DefaultTextStyle())

	assert.Equal(t,
		[]core.ChangeKind{core.ChangeBoards, core.ChangeActive, core.ChangeBoards, core.ChangeStyle},
		policy.kinds)

	svc.Suspend()
	assert.Equal(t, 1, policy.suspends)

	require.NoError(t, svc.Close(context.Background()))
	assert.True(t, policy.closed)

	// After Close the policy is detached; further suspends flush directly.
	svc.Suspend()
	assert.Equal(t, 1, policy.suspends)
}

func TestService_WatchUnsupported(t *testing.T) {
	svc := newTestService(newStubStateStore())
	_, err := svc.Watch(context.Background(), "*")
	require.Error(t, err)
}
