package templates

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, template Template) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if template.ID == uuid.Nil {
		template.ID = uuid.New()
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout_template (id, name, created_at) VALUES ($1, $2, $3);`,
		template.ID, template.Name, template.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("template.id", template.ID.String()))
	return &template, nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (_ *Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	template := &Template{}
	err = r.db.
		QueryRow(ctx, `
			SELECT id, name, created_at
			FROM workout_template
			WHERE id = $1
		`, id).
		Scan(&template.ID, &template.Name, &template.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	template.Exercises, err = r.exercisesOf(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get template exercises: %w", err)
	}
	template.ExerciseCount = len(template.Exercises)

	template.Warmups, err = r.WarmupSteps(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get template warmups: %w", err)
	}

	return template, nil
}

func (r *Repo) List(ctx context.Context) (_ []Template, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.name, t.created_at, COUNT(te.id)
		FROM workout_template t
		LEFT JOIN template_exercise te ON te.template_id = t.id
		GROUP BY t.id, t.name, t.created_at
		ORDER BY t.created_at DESC;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]Template, 0)
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.ExerciseCount); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(templates)))
	return templates, nil
}

func (r *Repo) Rename(ctx context.Context, id uuid.UUID, name string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.rename")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout_template SET name = $1 WHERE id = $2;`,
		name, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// Delete removes the template. Exercises and warmup steps go with it
// through the FK cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_template WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (r *Repo) AddExercise(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.addexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("template.id", exercise.TemplateID.String()))

	if exercise.ID == uuid.Nil {
		exercise.ID = uuid.New()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	// new exercises always go to the end of the template
	err = tx.
		QueryRow(ctx, `
			SELECT COALESCE(MAX(ord) + 1, 0)
			FROM template_exercise
			WHERE template_id = $1
		`, exercise.TemplateID).
		Scan(&exercise.Order)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		ctx,
		`INSERT INTO template_exercise (id, template_id, name, ord, target_set_count)
			VALUES ($1, $2, $3, $4, $5);`,
		exercise.ID, exercise.TemplateID, exercise.Name, exercise.Order, exercise.TargetSetCount,
	)
	if err != nil {
		return nil, err
	}

	return &exercise, nil
}

func (r *Repo) UpdateExercise(ctx context.Context, exercise *Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.updateexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exercise.ID.String()))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE template_exercise SET name = $1, target_set_count = $2 WHERE id = $3;`,
		exercise.Name, exercise.TargetSetCount, exercise.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// RemoveExercise deletes one exercise and renumbers the remaining ones, so
// the order values stay contiguous and zero based.
func (r *Repo) RemoveExercise(ctx context.Context, templateID, exerciseID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.removeexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exerciseID.String()))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var removedOrder int
	err = tx.
		QueryRow(ctx, `
			DELETE FROM template_exercise
			WHERE id = $1 AND template_id = $2
			RETURNING ord
		`, exerciseID, templateID).
		Scan(&removedOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrExerciseNotFound
		}
		return err
	}

	_, err = tx.Exec(
		ctx,
		`UPDATE template_exercise SET ord = ord - 1 WHERE template_id = $1 AND ord > $2;`,
		templateID, removedOrder,
	)
	return err
}

// MoveExercise moves the exercise at position from to position to,
// shifting everything in between by one.
func (r *Repo) MoveExercise(ctx context.Context, templateID uuid.UUID, from, to int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.moveexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("from", from))
	span.SetAttributes(attribute.Int("to", to))

	if from == to {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var count int
	if err = tx.
		QueryRow(ctx, `SELECT COUNT(*) FROM template_exercise WHERE template_id = $1`, templateID).
		Scan(&count); err != nil {
		return err
	}
	if from < 0 || from >= count || to < 0 || to >= count {
		return ErrExerciseNotFound
	}

	var movedID uuid.UUID
	err = tx.
		QueryRow(ctx, `
			SELECT id FROM template_exercise
			WHERE template_id = $1 AND ord = $2
		`, templateID, from).
		Scan(&movedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrExerciseNotFound
		}
		return err
	}

	if from < to {
		_, err = tx.Exec(
			ctx,
			`UPDATE template_exercise SET ord = ord - 1
				WHERE template_id = $1 AND ord > $2 AND ord <= $3;`,
			templateID, from, to,
		)
	} else {
		_, err = tx.Exec(
			ctx,
			`UPDATE template_exercise SET ord = ord + 1
				WHERE template_id = $1 AND ord >= $3 AND ord < $2;`,
			templateID, from, to,
		)
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		ctx,
		`UPDATE template_exercise SET ord = $1 WHERE id = $2;`,
		to, movedID,
	)
	return err
}

func (r *Repo) WarmupSteps(ctx context.Context, templateID uuid.UUID) (_ []WarmupStep, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.warmups")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("template.id", templateID.String()))

	rows, err := r.db.Query(ctx, `
		SELECT name, duration_seconds
		FROM warmup_step
		WHERE template_id = $1
		ORDER BY step_index;
	`, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := make([]WarmupStep, 0)
	for rows.Next() {
		var s WarmupStep
		if err := rows.Scan(&s.Name, &s.DurationSeconds); err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return steps, nil
}

// SetWarmupSteps replaces the whole warmup list of a template. Durations
// outside [MinWarmupSeconds, MaxWarmupSeconds] are clamped.
func (r *Repo) SetWarmupSteps(ctx context.Context, templateID uuid.UUID, steps []WarmupStep) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.setwarmups")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("template.id", templateID.String()))
	span.SetAttributes(attribute.Int("steps", len(steps)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var exists bool
	if err = tx.
		QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM workout_template WHERE id = $1)`, templateID).
		Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrTemplateNotFound
	}

	if _, err = tx.Exec(ctx, `DELETE FROM warmup_step WHERE template_id = $1;`, templateID); err != nil {
		return err
	}

	for i, step := range steps {
		_, err = tx.Exec(
			ctx,
			`INSERT INTO warmup_step (template_id, step_index, name, duration_seconds)
				VALUES ($1, $2, $3, $4);`,
			templateID, i, step.Name, clampWarmupSeconds(step.DurationSeconds),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// DeleteWarmupStep removes the step at the given index and renumbers the
// steps after it.
func (r *Repo) DeleteWarmupStep(ctx context.Context, templateID uuid.UUID, index int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.deletewarmup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("template.id", templateID.String()))
	span.SetAttributes(attribute.Int("index", index))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(
		ctx,
		`DELETE FROM warmup_step WHERE template_id = $1 AND step_index = $2;`,
		templateID, index,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWarmupStepNotFound
	}

	_, err = tx.Exec(
		ctx,
		`UPDATE warmup_step SET step_index = step_index - 1 WHERE template_id = $1 AND step_index > $2;`,
		templateID, index,
	)
	return err
}

func (r *Repo) exercisesOf(ctx context.Context, templateID uuid.UUID) ([]Exercise, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, template_id, name, ord, target_set_count
		FROM template_exercise
		WHERE template_id = $1
		ORDER BY ord;
	`, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2exercises(rows)
}

func rows2exercises(rows pgx.Rows) ([]Exercise, error) {
	exercises := make([]Exercise, 0)
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.TemplateID, &e.Name, &e.Order, &e.TargetSetCount); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}
