package records

import (
	"errors"
	"fmt"
	"sort"

	"github.com/automoto/doomerang-arena/components"
	"github.com/automoto/doomerang-arena/shared/messages"
	"github.com/quasilyte/gdata"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

const (
	indexKey     = "match_index"
	recordPrefix = "match_"
)

// ErrNotFound is returned when no record exists for an id.
var ErrNotFound = errors.New("match record not found")

// ItemStore is the key/value surface the store needs. *gdata.Manager
// satisfies it.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Record is the persisted summary of a finished match.
type Record struct {
	ID          string             `msgpack:"id"`
	P1Character string             `msgpack:"p1_character"`
	P2Character string             `msgpack:"p2_character"`
	WinnerID    string             `msgpack:"winner"`
	Reason      messages.EndReason `msgpack:"reason"`
	FinalHP     [2]int             `msgpack:"final_hp"`
	Frames      int                `msgpack:"frames"` // simulated steps
	FinishedAt  int64              `msgpack:"finished_at"`
}

// NewRecord summarises a decided match.
func NewRecord(state components.MatchData, p1Character, p2Character string, frames int, finishedAt int64) Record {
	return Record{
		ID:          state.ID,
		P1Character: p1Character,
		P2Character: p2Character,
		WinnerID:    state.WinnerID,
		Reason:      state.Reason,
		FinalHP:     [2]int{state.Sides[0].HP, state.Sides[1].HP},
		Frames:      frames,
		FinishedAt:  finishedAt,
	}
}

// Store keeps match records and an index of their ids.
type Store struct {
	items  ItemStore
	logger *zap.Logger
}

// Open creates a store backed by gdata under the given application name.
func Open(appName string, logger *zap.Logger) (*Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open records: %w", err)
	}
	return NewStore(m, logger), nil
}

// NewStore wraps an item store.
func NewStore(items ItemStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{items: items, logger: logger.Named("records")}
}

// Save writes a record and adds it to the index.
func (s *Store) Save(r Record) error {
	if r.ID == "" {
		return errors.New("save record: empty id")
	}
	data, err := msgpack.Marshal(&r)
	if err != nil {
		return fmt.Errorf("save record %s: %w", r.ID, err)
	}
	if err := s.items.SaveItem(recordPrefix+r.ID, data); err != nil {
		return fmt.Errorf("save record %s: %w", r.ID, err)
	}

	ids, err := s.index()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == r.ID {
			return nil
		}
	}
	ids = append(ids, r.ID)
	if err := s.writeIndex(ids); err != nil {
		return err
	}
	s.logger.Debug("record saved", zap.String("match", r.ID))
	return nil
}

// Load reads one record.
func (s *Store) Load(id string) (Record, error) {
	data, err := s.items.LoadItem(recordPrefix + id)
	if err != nil {
		return Record{}, fmt.Errorf("load record %s: %w", id, err)
	}
	if data == nil {
		return Record{}, fmt.Errorf("load record %s: %w", id, ErrNotFound)
	}
	var r Record
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("load record %s: %w", id, err)
	}
	return r, nil
}

// List returns every indexed record, most recent first. Records that fail
// to load are logged and skipped.
func (s *Store) List() ([]Record, error) {
	ids, err := s.index()
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		r, err := s.Load(id)
		if err != nil {
			s.logger.Warn("skipping record", zap.String("match", id), zap.Error(err))
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinishedAt > out[j].FinishedAt
	})
	return out, nil
}

func (s *Store) index() ([]string, error) {
	data, err := s.items.LoadItem(indexKey)
	if err != nil {
		return nil, fmt.Errorf("load record index: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var ids []string
	if err := msgpack.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode record index: %w", err)
	}
	return ids, nil
}

func (s *Store) writeIndex(ids []string) error {
	data, err := msgpack.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode record index: %w", err)
	}
	if err := s.items.SaveItem(indexKey, data); err != nil {
		return fmt.Errorf("save record index: %w", err)
	}
	return nil
}
