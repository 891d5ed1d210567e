package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/qasurvey/internal/survey/domain"
	"github.com/aussiebroadwan/qasurvey/internal/survey/store"
)

const recordColumns = `id, owner_id, owner_profile, title, experience_level, salary_band, tools,
	location, functional_area, created_at, updated_at`

const (
	insertRecord = `INSERT INTO records (owner_id, owner_profile, title, experience_level, salary_band,
	tools, location, functional_area, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + recordColumns

	selectRecordByID     = `SELECT ` + recordColumns + ` FROM records WHERE id = ?`
	selectRecordOwner    = `SELECT owner_id FROM records WHERE id = ?`
	selectRecordsByOwner = `SELECT ` + recordColumns + ` FROM records WHERE owner_id = ? ORDER BY id`
	selectRecords        = `SELECT ` + recordColumns + ` FROM records ORDER BY id`
	deleteRecordByID     = `DELETE FROM records WHERE id = ?`

	// NULL parameters leave the column unchanged.
	patchRecord = `UPDATE records SET
	title            = COALESCE(:title, title),
	experience_level = COALESCE(:level, experience_level),
	salary_band      = COALESCE(:salary, salary_band),
	tools            = COALESCE(:tools, tools),
	location         = COALESCE(:location, location),
	functional_area  = COALESCE(:area, functional_area),
	updated_at       = :now
WHERE id = :id
RETURNING ` + recordColumns
)

type recordsRepo struct {
	db *sql.DB
}

func scanRecord(row scanner) (domain.Record, error) {
	var (
		rec              domain.Record
		profile, level   string
		tools            string
		created, updated int64
	)
	err := row.Scan(
		&rec.ID, &rec.OwnerID, &profile, &rec.Title, &level, &rec.SalaryBand, &tools,
		&rec.Location, &rec.FunctionalArea, &created, &updated,
	)
	if err != nil {
		return domain.Record{}, mapNotFound(err)
	}

	if rec.OwnerProfile, err = domain.ParseProfile(profile); err != nil {
		return domain.Record{}, fmt.Errorf("sqlite: record %d: %w", rec.ID, err)
	}
	if rec.ExperienceLevel, err = domain.ParseExperienceLevel(level); err != nil {
		return domain.Record{}, fmt.Errorf("sqlite: record %d: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(tools), &rec.Tools); err != nil {
		return domain.Record{}, fmt.Errorf("sqlite: record %d tools: %w", rec.ID, err)
	}
	if rec.Tools == nil {
		rec.Tools = []string{}
	}
	rec.CreatedAt = fromNanos(created)
	rec.UpdatedAt = fromNanos(updated)
	return rec, nil
}

func encodeTools(tools []string) (string, error) {
	b, err := json.Marshal(domain.NormalizeTools(tools))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *recordsRepo) CreateRecord(ctx context.Context, rec domain.Record) (domain.Record, error) {
	tools, err := encodeTools(rec.Tools)
	if err != nil {
		return domain.Record{}, err
	}

	row := r.db.QueryRowContext(ctx, insertRecord,
		rec.OwnerID, rec.OwnerProfile.String(), rec.Title, rec.ExperienceLevel.String(), rec.SalaryBand,
		tools, rec.Location, rec.FunctionalArea, toNanos(rec.CreatedAt), toNanos(rec.UpdatedAt),
	)
	created, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, mapConflict(err)
	}
	return created, nil
}

func (r *recordsRepo) GetRecord(ctx context.Context, id int64) (domain.Record, error) {
	return scanRecord(r.db.QueryRowContext(ctx, selectRecordByID, id))
}

// checkOwner resolves ErrNotFound before ErrNotOwner. Owners never change,
// so the answer stays valid for the rest of the transaction.
func checkOwner(ctx context.Context, tx *sql.Tx, id, ownerID int64) error {
	var owner int64
	if err := tx.QueryRowContext(ctx, selectRecordOwner, id).Scan(&owner); err != nil {
		return mapNotFound(err)
	}
	if owner != ownerID {
		return store.ErrNotOwner
	}
	return nil
}

func (r *recordsRepo) UpdateRecord(
	ctx context.Context,
	id, ownerID int64,
	patch domain.RecordPatch,
	now time.Time,
) (domain.Record, error) {
	var (
		level sql.NullString
		tools sql.NullString
	)
	if patch.ExperienceLevel != nil {
		level = sql.NullString{String: patch.ExperienceLevel.String(), Valid: true}
	}
	if patch.Tools != nil {
		encoded, err := encodeTools(*patch.Tools)
		if err != nil {
			return domain.Record{}, err
		}
		tools = sql.NullString{String: encoded, Valid: true}
	}

	var updated domain.Record
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, id, ownerID); err != nil {
			return err
		}

		var err error
		updated, err = scanRecord(tx.QueryRowContext(ctx, patchRecord,
			sql.Named("title", nullString(patch.Title)),
			sql.Named("level", level),
			sql.Named("salary", nullString(patch.SalaryBand)),
			sql.Named("tools", tools),
			sql.Named("location", nullString(patch.Location)),
			sql.Named("area", nullString(patch.FunctionalArea)),
			sql.Named("now", toNanos(now)),
			sql.Named("id", id),
		))
		return err
	})
	if err != nil {
		return domain.Record{}, err
	}
	return updated, nil
}

func (r *recordsRepo) DeleteRecord(ctx context.Context, id, ownerID int64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, id, ownerID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, deleteRecordByID, id)
		return err
	})
}

func (r *recordsRepo) ListRecordsByOwner(ctx context.Context, ownerID int64) ([]domain.Record, error) {
	return r.list(ctx, selectRecordsByOwner, ownerID)
}

func (r *recordsRepo) ListRecords(ctx context.Context) ([]domain.Record, error) {
	return r.list(ctx, selectRecords)
}

func (r *recordsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
