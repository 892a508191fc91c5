// Package postgres stores questions and versions with the ent SQL builder.
package postgres

import (
	"context"
	stdsql "database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"

	"github.com/Alijeyrad/uat_backend/internal/question"
	"github.com/Alijeyrad/uat_backend/internal/repo"
	"github.com/Alijeyrad/uat_backend/internal/version"
	"github.com/Alijeyrad/uat_backend/pkg/database"
)

// carryOverActive copies active revisions into the draft unless the draft
// already holds a question with the same name.
const carryOverActive = `
INSERT INTO question_revisions (version_id, question_id, definition)
SELECT $1, r.question_id, r.definition
FROM question_revisions r
JOIN questions q ON q.id = r.question_id
WHERE r.version_id = $2
  AND q.name NOT IN (
    SELECT dq.name
    FROM question_revisions d
    JOIN questions dq ON dq.id = d.question_id
    WHERE d.version_id = $1
  )`

// Repository implements repo.Repository on Postgres.
type Repository struct {
	drv     dialect.Driver
	builder *sql.DialectBuilder
	now     func() time.Time
}

var _ repo.Repository = (*Repository)(nil)

func New(drv dialect.Driver) *Repository {
	return &Repository{
		drv:     drv,
		builder: sql.Dialect(dialect.Postgres),
		now:     time.Now,
	}
}

// Migrate creates the tables and makes sure an active and a draft version exist.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := database.Migrate(ctx, r.drv, Tables...); err != nil {
		return err
	}
	return r.withTx(ctx, func(tx dialect.Tx) error {
		for _, stage := range []version.LifecycleStage{version.StageActive, version.StageDraft} {
			_, err := r.versionID(ctx, tx, stage)
			if errors.Is(err, repo.ErrNotFound) {
				_, err = r.openVersion(ctx, tx, stage)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) Close() error {
	return r.drv.Close()
}

func (r *Repository) LookupQuestion(ctx context.Context, id int64) (*question.Definition, error) {
	query, args := r.builder.Select("definition").
		From(r.builder.Table(revisionsTable)).
		Where(sql.EQ("question_id", id)).
		OrderBy(sql.Desc("version_id")).
		Limit(1).
		Query()

	defs, err := r.queryDefinitions(ctx, r.drv, query, args)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("question %d: %w", id, repo.ErrNotFound)
	}
	return defs[0], nil
}

func (r *Repository) FindConflictingQuestion(ctx context.Context, def *question.Definition) (*question.Definition, error) {
	storage := []*sql.Predicate{sql.EQ("path_segment", def.PathSegment())}
	if enumID, ok := def.EnumeratorID(); ok {
		storage = append(storage, sql.EQ("enumerator_id", enumID))
	} else {
		storage = append(storage, sql.IsNull("enumerator_id"))
	}

	for _, pred := range []*sql.Predicate{sql.And(storage...), sql.EQ("name", def.Name())} {
		if def.IsPersisted() {
			pred = sql.And(pred, sql.NEQ("id", def.ID()))
		}
		id, err := r.firstQuestionID(ctx, pred)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return r.LookupQuestion(ctx, id)
	}
	return nil, repo.ErrNotFound
}

func (r *Repository) firstQuestionID(ctx context.Context, pred *sql.Predicate) (int64, error) {
	query, args := r.builder.Select("id").
		From(r.builder.Table(questionsTable)).
		Where(pred).
		OrderBy("id").
		Limit(1).
		Query()

	var rows sql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("find conflicting question: %w", err)
	}
	ids, err := scanIDs(&rows)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, repo.ErrNotFound
	}
	return ids[0], nil
}

func (r *Repository) InsertQuestion(ctx context.Context, def *question.Definition) (*question.Definition, error) {
	var persisted *question.Definition
	err := r.withTx(ctx, func(tx dialect.Tx) error {
		var enumID any
		if id, ok := def.EnumeratorID(); ok {
			enumID = id
		}
		query, args := r.builder.Insert(questionsTable).
			Columns("name", "enumerator_id", "path_segment", "question_type", "created_at").
			Values(def.Name(), enumID, def.PathSegment(), string(def.Type()), r.now().UTC()).
			Returning("id").
			Query()

		var rows sql.Rows
		if err := tx.Query(ctx, query, args, &rows); err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
		ids, err := scanIDs(&rows)
		if err != nil {
			return err
		}
		if len(ids) != 1 {
			return fmt.Errorf("insert question: expected one id, got %d", len(ids))
		}

		persisted, err = question.BuilderFrom(def).SetID(ids[0]).Build()
		if err != nil {
			return err
		}

		draftID, err := r.versionID(ctx, tx, version.StageDraft)
		if err != nil {
			return err
		}
		return r.putRevision(ctx, tx, draftID, persisted)
	})
	if err != nil {
		return nil, err
	}
	return persisted, nil
}

func (r *Repository) ActiveVersion(ctx context.Context) (*version.Version, error) {
	return r.loadVersion(ctx, r.drv, version.StageActive)
}

func (r *Repository) DraftVersion(ctx context.Context) (*version.Version, error) {
	return r.loadVersion(ctx, r.drv, version.StageDraft)
}

func (r *Repository) UpdateOrCreateDraft(ctx context.Context, def *question.Definition) (*question.Definition, error) {
	if !def.IsPersisted() {
		return nil, fmt.Errorf("question %q has no id: %w", def.Name(), repo.ErrNotFound)
	}
	err := r.withTx(ctx, func(tx dialect.Tx) error {
		draftID, err := r.versionID(ctx, tx, version.StageDraft)
		if err != nil {
			return err
		}
		return r.putRevision(ctx, tx, draftID, def)
	})
	if err != nil {
		return nil, err
	}
	return def, nil
}

func (r *Repository) Publish(ctx context.Context) (*version.Version, error) {
	var published *version.Version
	err := r.withTx(ctx, func(tx dialect.Tx) error {
		draftID, err := r.versionID(ctx, tx, version.StageDraft)
		if errors.Is(err, repo.ErrNotFound) {
			return repo.ErrNoDraft
		}
		if err != nil {
			return err
		}

		activeID, err := r.versionID(ctx, tx, version.StageActive)
		switch {
		case err == nil:
			if err := tx.Exec(ctx, carryOverActive, []any{draftID, activeID}, nil); err != nil {
				return fmt.Errorf("carry over active questions: %w", err)
			}
			if err := r.setStage(ctx, tx, activeID, version.StageObsolete, nil); err != nil {
				return err
			}
		case !errors.Is(err, repo.ErrNotFound):
			return err
		}

		submitted := r.now().UTC()
		if err := r.setStage(ctx, tx, draftID, version.StageActive, &submitted); err != nil {
			return err
		}
		if _, err := r.openVersion(ctx, tx, version.StageDraft); err != nil {
			return err
		}

		published, err = r.loadVersion(ctx, tx, version.StageActive)
		return err
	})
	if err != nil {
		return nil, err
	}
	return published, nil
}

func (r *Repository) withTx(ctx context.Context, fn func(tx dialect.Tx) error) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: rolling back transaction: %v", err, rerr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// versionID returns the newest version with the given stage.
func (r *Repository) versionID(ctx context.Context, q dialect.ExecQuerier, stage version.LifecycleStage) (int64, error) {
	id, _, err := r.versionRow(ctx, q, stage)
	return id, err
}

func (r *Repository) versionRow(ctx context.Context, q dialect.ExecQuerier, stage version.LifecycleStage) (int64, time.Time, error) {
	query, args := r.builder.Select("id", "submit_time").
		From(r.builder.Table(versionsTable)).
		Where(sql.EQ("lifecycle_stage", string(stage))).
		OrderBy(sql.Desc("id")).
		Limit(1).
		Query()

	var rows sql.Rows
	if err := q.Query(ctx, query, args, &rows); err != nil {
		return 0, time.Time{}, fmt.Errorf("query %s version: %w", stage, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, time.Time{}, err
		}
		return 0, time.Time{}, fmt.Errorf("%s version: %w", stage, repo.ErrNotFound)
	}
	var (
		id        int64
		submitted stdsql.NullTime
	)
	if err := rows.Scan(&id, &submitted); err != nil {
		return 0, time.Time{}, fmt.Errorf("scan %s version: %w", stage, err)
	}
	return id, submitted.Time, rows.Err()
}

func (r *Repository) openVersion(ctx context.Context, tx dialect.Tx, stage version.LifecycleStage) (int64, error) {
	query, args := r.builder.Insert(versionsTable).
		Columns("lifecycle_stage", "created_at").
		Values(string(stage), r.now().UTC()).
		Returning("id").
		Query()

	var rows sql.Rows
	if err := tx.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("open %s version: %w", stage, err)
	}
	ids, err := scanIDs(&rows)
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("open %s version: expected one id, got %d", stage, len(ids))
	}
	return ids[0], nil
}

func (r *Repository) setStage(ctx context.Context, tx dialect.Tx, id int64, stage version.LifecycleStage, submitted *time.Time) error {
	update := r.builder.Update(versionsTable).
		Set("lifecycle_stage", string(stage)).
		Where(sql.EQ("id", id))
	if submitted != nil {
		update.Set("submit_time", *submitted)
	}
	query, args := update.Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("mark version %d %s: %w", id, stage, err)
	}
	return nil
}

func (r *Repository) putRevision(ctx context.Context, tx dialect.Tx, versionID int64, def *question.Definition) error {
	raw, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("encode question %d: %w", def.ID(), err)
	}
	query, args := r.builder.Insert(revisionsTable).
		Columns("version_id", "question_id", "definition").
		Values(versionID, def.ID(), string(raw)).
		OnConflict(
			sql.ConflictColumns("version_id", "question_id"),
			sql.ResolveWithNewValues(),
		).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("write revision of question %d: %w", def.ID(), err)
	}
	return nil
}

func (r *Repository) loadVersion(ctx context.Context, q dialect.ExecQuerier, stage version.LifecycleStage) (*version.Version, error) {
	id, submitted, err := r.versionRow(ctx, q, stage)
	if err != nil {
		return nil, err
	}

	query, args := r.builder.Select("definition").
		From(r.builder.Table(revisionsTable)).
		Where(sql.EQ("version_id", id)).
		OrderBy("question_id").
		Query()
	defs, err := r.queryDefinitions(ctx, q, query, args)
	if err != nil {
		return nil, err
	}
	return version.New(id, stage, submitted, defs...)
}

func (r *Repository) queryDefinitions(ctx context.Context, q dialect.ExecQuerier, query string, args []any) ([]*question.Definition, error) {
	var rows sql.Rows
	if err := q.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query definitions: %w", err)
	}
	defer rows.Close()

	var defs []*question.Definition
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan definition: %w", err)
		}
		def := new(question.Definition)
		if err := json.Unmarshal(raw, def); err != nil {
			return nil, fmt.Errorf("decode definition: %w", err)
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func scanIDs(rows *sql.Rows) ([]int64, error) {
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
