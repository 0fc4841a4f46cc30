package checkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/assemblie-checkin/internal/model"
)

func newStore() *SelectionStore {
	return NewSelectionStore("m_u1", []model.DependentID{"d_b", "d_a"})
}

func TestSelectionStoreStartsEmpty(t *testing.T) {
	sel := newStore().Get()

	assert.Equal(t, model.MemberID("m_u1"), sel.Primary)
	assert.False(t, sel.PrimarySelected)
	assert.Empty(t, sel.Dependents)
	assert.True(t, sel.Empty())
}

func TestSelectionStoreTogglePrimary(t *testing.T) {
	store := newStore()

	require.NoError(t, store.Toggle(model.MemberRef("m_u1")))
	assert.True(t, store.Get().PrimarySelected)

	require.NoError(t, store.Toggle(model.MemberRef("m_u1")))
	assert.False(t, store.Get().PrimarySelected)
}

func TestSelectionStoreRejectsOtherMember(t *testing.T) {
	store := newStore()

	err := store.Toggle(model.MemberRef("m_someone"))
	assert.ErrorIs(t, err, ErrUnknownParticipant)
	assert.False(t, store.Get().PrimarySelected)
}

func TestSelectionStoreRejectsUnknownDependent(t *testing.T) {
	store := newStore()

	err := store.ToggleDependent("d_stranger")
	assert.ErrorIs(t, err, ErrUnknownParticipant)
}

func TestSelectionStoreKeepsHouseholdOrder(t *testing.T) {
	store := newStore()
	require.NoError(t, store.ToggleDependent("d_a"))
	require.NoError(t, store.ToggleDependent("d_b"))

	assert.Equal(t, []model.DependentID{"d_b", "d_a"}, store.Get().Dependents)

	require.NoError(t, store.ToggleDependent("d_b"))
	assert.Equal(t, []model.DependentID{"d_a"}, store.Get().Dependents)
}

func TestSelectionStoreSeedMatchesRoster(t *testing.T) {
	store := newStore()
	require.NoError(t, store.ToggleDependent("d_b"))

	store.Seed(roster([]model.MemberID{"m_u1"}, []model.DependentID{"d_a", "d_extra"}))

	sel := store.Get()
	assert.True(t, sel.PrimarySelected)
	assert.Equal(t, []model.DependentID{"d_a", "d_extra"}, sel.Dependents)
	assert.Equal(t, []model.DependentID{"d_b", "d_a", "d_extra"}, store.Household())
}

func TestSelectionStoreSnapshotIsIndependent(t *testing.T) {
	store := newStore()
	require.NoError(t, store.ToggleDependent("d_a"))

	sel := store.Get()
	require.NoError(t, store.ToggleDependent("d_a"))

	assert.Equal(t, []model.DependentID{"d_a"}, sel.Dependents)
}

func TestSelectionStoreSeedIfUneditedKeepsToggles(t *testing.T) {
	store := newStore()
	require.NoError(t, store.TogglePrimary("m_u1"))

	seeded := store.SeedIfUnedited(roster(nil, []model.DependentID{"d_a"}))

	assert.False(t, seeded)
	sel := store.Get()
	assert.True(t, sel.PrimarySelected)
	assert.Empty(t, sel.Dependents)

	store.Reset()
	assert.True(t, store.SeedIfUnedited(roster(nil, []model.DependentID{"d_a"})))
	assert.Equal(t, []model.DependentID{"d_a"}, store.Get().Dependents)
}

func TestRosterCacheRejectsStaleGeneration(t *testing.T) {
	cache := NewRosterCache()
	oldGen := cache.SwitchGroup("KIDS01")
	fetch := cache.BeginFetch("KIDS01", oldGen)
	cache.SwitchGroup("TEENS2")

	_, err := cache.Replace(fetch, roster([]model.MemberID{"m_u1"}, nil))
	assert.ErrorIs(t, err, ErrContextChanged)

	_, cached := cache.Get("KIDS01")
	assert.False(t, cached)
	_, cached = cache.Get("TEENS2")
	assert.False(t, cached)
}

func TestRosterCacheEarlierFetchNeverOverwritesLater(t *testing.T) {
	cache := NewRosterCache()
	gen := cache.SwitchGroup("KIDS01")
	earlier := cache.BeginFetch("KIDS01", gen)
	later := cache.BeginFetch("KIDS01", gen)

	_, err := cache.Replace(later, roster([]model.MemberID{"m_u1"}, nil))
	require.NoError(t, err)
	got, err := cache.Replace(earlier, roster(nil, nil))
	require.NoError(t, err)

	assert.True(t, got.Members.Has("m_u1"), "earlier read returns the newer roster")
	cached, _ := cache.Get("KIDS01")
	assert.True(t, cached.Members.Has("m_u1"))
}

func TestRosterCacheInvalidateBlocksEarlierFetch(t *testing.T) {
	cache := NewRosterCache()
	gen := cache.SwitchGroup("KIDS01")
	earlier := cache.BeginFetch("KIDS01", gen)
	failed := cache.BeginFetch("KIDS01", gen)

	cache.Invalidate(failed)
	_, err := cache.Replace(earlier, roster(nil, nil))

	assert.ErrorIs(t, err, ErrFetchFailed)
	_, cached := cache.Get("KIDS01")
	assert.False(t, cached)

	// a fetch started after the failure is stored normally
	_, err = cache.Replace(cache.BeginFetch("KIDS01", gen), roster(nil, nil))
	require.NoError(t, err)
	_, cached = cache.Get("KIDS01")
	assert.True(t, cached)
}

func TestRosterCacheSwitchClearsRoster(t *testing.T) {
	cache := NewRosterCache()
	gen := cache.SwitchGroup("KIDS01")
	_, err := cache.Replace(cache.BeginFetch("KIDS01", gen), roster([]model.MemberID{"m_u1"}, nil))
	require.NoError(t, err)

	cache.SwitchGroup("KIDS01")

	_, cached := cache.Get("KIDS01")
	assert.False(t, cached)
}

func TestRosterCacheReturnsCopies(t *testing.T) {
	cache := NewRosterCache()
	gen := cache.SwitchGroup("KIDS01")
	_, err := cache.Replace(cache.BeginFetch("KIDS01", gen), roster(nil, nil))
	require.NoError(t, err)

	r, ok := cache.Get("KIDS01")
	require.True(t, ok)
	r.Members.Add("m_u1")

	again, _ := cache.Get("KIDS01")
	assert.Empty(t, again.Members)
}
