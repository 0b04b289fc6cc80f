// Package Drafts keeps checklists that were saved but not yet uploaded.
package Drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Checklist/Models"
)

// KeyPrefix starts every draft key; the rest is the save time in unix
// milliseconds.
const KeyPrefix = "checklist_"

var ErrDraftNotFound = errors.New("draft not found")

// Summary is one line of the drafts list.
type Summary struct {
	Key       string `json:"key"`
	Timestamp int64  `json:"timestamp"`
	Plate     string `json:"placa"`
}

// Entry is a stored draft decoded back into its record.
type Entry struct {
	Summary
	Record *Models.ChecklistRecord
}

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log}
}

// Save stores a new snapshot of rec for owner and returns its key. Two saves
// in the same millisecond get consecutive timestamps.
func (s *Store) Save(ctx context.Context, owner string, rec *Models.ChecklistRecord, now time.Time) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encoding draft: %w", err)
	}

	ts := now.UnixMilli()
	for attempt := 0; attempt < 1000; attempt++ {
		d := Models.Draft{
			Owner:     owner,
			Key:       KeyPrefix + strconv.FormatInt(ts, 10),
			Timestamp: ts,
			Plate:     rec.Plate,
			Data:      datatypes.JSON(data),
			CreatedAt: now,
		}
		res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&d)
		if res.Error != nil {
			return "", fmt.Errorf("saving draft: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			s.log.Debug("draft saved", zap.String("owner", owner), zap.String("key", d.Key))
			return d.Key, nil
		}
		ts++
	}
	return "", errors.New("saving draft: no free key")
}

// List returns owner's drafts, newest first. Drafts that no longer decode
// are left out.
func (s *Store) List(ctx context.Context, owner string) ([]Summary, error) {
	entries, err := s.entries(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Summary)
	}
	return out, nil
}

func (s *Store) entries(ctx context.Context, owner string) ([]Entry, error) {
	var rows []Models.Draft
	err := s.db.WithContext(ctx).
		Where(ownedBy(owner)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}, Desc: true}).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}

	out := make([]Entry, 0, len(rows))
	for _, row := range rows {
		rec, err := decode(row)
		if err != nil {
			s.log.Warn("skipping malformed draft", zap.String("owner", owner), zap.String("key", row.Key), zap.Error(err))
			continue
		}
		out = append(out, Entry{
			Summary: Summary{Key: row.Key, Timestamp: row.Timestamp, Plate: rec.Plate},
			Record:  rec,
		})
	}
	return out, nil
}

// Get loads one draft. A stored draft that does not decode gives a
// *Models.MalformedDraftError.
func (s *Store) Get(ctx context.Context, owner, key string) (*Models.ChecklistRecord, error) {
	var row Models.Draft
	err := s.db.WithContext(ctx).Where(ownedBy(owner)).Where(keyIs(key)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading draft %s: %w", key, err)
	}
	return decode(row)
}

func (s *Store) Delete(ctx context.Context, owner, key string) error {
	res := s.db.WithContext(ctx).Where(ownedBy(owner)).Where(keyIs(key)).Delete(&Models.Draft{})
	if res.Error != nil {
		return fmt.Errorf("deleting draft %s: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDraftNotFound
	}
	return nil
}

// PurgeOlderThan deletes drafts of every owner saved before cutoff and
// returns how many were removed.
func (s *Store) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where(clause.Lt{Column: clause.Column{Name: "timestamp"}, Value: cutoff.UnixMilli()}).
		Delete(&Models.Draft{})
	if res.Error != nil {
		return 0, fmt.Errorf("purging drafts: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func ownedBy(owner string) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: "owner"}, Value: owner}
}

func keyIs(key string) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}

func decode(row Models.Draft) (*Models.ChecklistRecord, error) {
	var rec Models.ChecklistRecord
	if err := json.Unmarshal(row.Data, &rec); err != nil {
		return nil, &Models.MalformedDraftError{Key: row.Key, Err: err}
	}
	return &rec, nil
}
