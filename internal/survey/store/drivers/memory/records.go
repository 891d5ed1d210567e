package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store"
)

type recordsRepo Store

func (r *recordsRepo) CreateRecord(ctx context.Context, rec domain.Record) (domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return domain.Record{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byOwner[rec.OwnerID]; ok {
		return domain.Record{}, &store.ConflictError{Field: "owner_id"}
	}

	rec.ID = r.nextRecord
	r.nextRecord++

	stored := copyRecord(&rec)
	r.records[rec.ID] = &stored
	r.byOwner[rec.OwnerID] = rec.ID

	return copyRecord(&stored), nil
}

func (r *recordsRepo) GetRecord(ctx context.Context, id int64) (domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return domain.Record{}, store.ErrNotFound
	}
	return copyRecord(rec), nil
}

func (r *recordsRepo) UpdateRecord(
	ctx context.Context,
	id, ownerID int64,
	patch domain.RecordPatch,
	now time.Time,
) (domain.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return domain.Record{}, store.ErrNotFound
	}
	if rec.OwnerID != ownerID {
		return domain.Record{}, store.ErrNotOwner
	}

	updated := patch.Apply(copyRecord(rec), now)
	*rec = updated
	return copyRecord(rec), nil
}

func (r *recordsRepo) DeleteRecord(ctx context.Context, id, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return store.ErrNotFound
	}
	if rec.OwnerID != ownerID {
		return store.ErrNotOwner
	}

	delete(r.records, id)
	delete(r.byOwner, rec.OwnerID)
	return nil
}

func (r *recordsRepo) ListRecordsByOwner(ctx context.Context, ownerID int64) ([]domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byOwner[ownerID]
	if !ok {
		return []domain.Record{}, nil
	}
	return []domain.Record{copyRecord(r.records[id])}, nil
}

func (r *recordsRepo) ListRecords(ctx context.Context) ([]domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, copyRecord(rec))
	}
	slices.SortFunc(out, func(a, b domain.Record) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}
