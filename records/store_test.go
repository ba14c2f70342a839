package records

import (
	"errors"
	"testing"

	"github.com/automoto/doomerang-arena/components"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memItems struct {
	items   map[string][]byte
	failKey string
}

func newMemItems() *memItems {
	return &memItems{items: make(map[string][]byte)}
}

func (m *memItems) LoadItem(key string) ([]byte, error) {
	return m.items[key], nil
}

func (m *memItems) SaveItem(key string, data []byte) error {
	if key == m.failKey {
		return errors.New("disk full")
	}
	m.items[key] = append([]byte(nil), data...)
	return nil
}

func finishedState(id string) components.MatchData {
	state := components.NewMatchData(id, "p1", "p2")
	state.Sides[1].HP = 0
	state.WinnerID = "p1"
	state.Reason = messages.EndKO
	return state
}

func TestSaveAndLoad(t *testing.T) {
	store := NewStore(newMemItems(), nil)
	rec := NewRecord(finishedState("m-1"), "kaito", "brann", 840, 100)

	require.NoError(t, store.Save(rec))

	got, err := store.Load("m-1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
	assert.Equal(t, [2]int{100, 0}, got.FinalHP)
}

func TestLoadMissing(t *testing.T) {
	store := NewStore(newMemItems(), nil)
	_, err := store.Load("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirstWithoutDuplicates(t *testing.T) {
	store := NewStore(newMemItems(), nil)
	require.NoError(t, store.Save(NewRecord(finishedState("old"), "kaito", "brann", 10, 1)))
	require.NoError(t, store.Save(NewRecord(finishedState("new"), "brann", "kaito", 20, 2)))
	require.NoError(t, store.Save(NewRecord(finishedState("old"), "kaito", "brann", 10, 1)))

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "old", list[1].ID)
}

func TestSaveReportsStorageFailure(t *testing.T) {
	items := newMemItems()
	items.failKey = recordPrefix + "m-2"
	store := NewStore(items, nil)

	err := store.Save(NewRecord(finishedState("m-2"), "kaito", "brann", 1, 1))
	assert.Error(t, err)

	assert.Error(t, store.Save(Record{}))
}

func TestMatchStateCodec(t *testing.T) {
	state := finishedState("m-3")
	state.Timer = 1234
	state.Sides[0].Resonance = 42
	state.LastHitPosition.X = 512

	data, err := EncodeMatchState(state)
	require.NoError(t, err)

	got, err := DecodeMatchState(data)
	require.NoError(t, err)
	assert.Equal(t, state, got)

	_, err = DecodeMatchState([]byte{0xc1})
	assert.Error(t, err)
}
