package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

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

// CreateGraph writes the whole session graph (session, exercises, sets) in
// one transaction. On any failure nothing is left behind.
func (r *Repo) CreateGraph(ctx context.Context, session *Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.creategraph")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", session.ID.String()))
	span.SetAttributes(attribute.Int("exercises", len(session.Exercises)))

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

	_, err = tx.Exec(
		ctx,
		`INSERT INTO workout_session (id, template_id, name, started_at, duration_seconds)
			VALUES ($1, $2, $3, $4, $5);`,
		session.ID, session.TemplateID, session.Name, session.StartedAt, session.DurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	for i := range session.Exercises {
		exercise := &session.Exercises[i]
		_, err = tx.Exec(
			ctx,
			`INSERT INTO session_exercise (id, session_id, template_exercise_id, name, ord)
				VALUES ($1, $2, $3, $4, $5);`,
			exercise.ID, exercise.SessionID, exercise.TemplateExerciseID, exercise.Name, exercise.Order,
		)
		if err != nil {
			return fmt.Errorf("insert session exercise [%s]: %w", exercise.Name, err)
		}

		for _, set := range exercise.Sets {
			_, err = tx.Exec(
				ctx,
				`INSERT INTO session_set (id, exercise_id, set_index, reps, weight, is_complete)
					VALUES ($1, $2, $3, $4, $5, $6);`,
				set.ID, set.ExerciseID, set.SetIndex, set.Reps, set.Weight, set.IsComplete,
			)
			if err != nil {
				return fmt.Errorf("insert session set %d of [%s]: %w", set.SetIndex, exercise.Name, err)
			}
		}
	}

	return nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	session := &Session{}
	err = r.db.
		QueryRow(ctx, `
			SELECT id, template_id, name, started_at, duration_seconds
			FROM workout_session
			WHERE id = $1
		`, id).
		Scan(&session.ID, &session.TemplateID, &session.Name, &session.StartedAt, &session.DurationSeconds)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if err := r.attachGraph(ctx, []*Session{session}); err != nil {
		return nil, err
	}
	return session, nil
}

// ListRecent returns up to limit sessions, newest first, with their
// exercises and sets attached.
func (r *Repo) ListRecent(ctx context.Context, limit int) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.listrecent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(ctx, `
		SELECT id, template_id, name, started_at, duration_seconds
		FROM workout_session
		ORDER BY started_at DESC
		LIMIT $1;
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]Session, 0)
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.TemplateID, &s.Name, &s.StartedAt, &s.DurationSeconds); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*Session, len(sessions))
	for i := range sessions {
		refs[i] = &sessions[i]
	}
	if err := r.attachGraph(ctx, refs); err != nil {
		return nil, err
	}

	return sessions, nil
}

// ExerciseHistory is one past occurrence of an exercise: the session it
// happened in and the sets recorded there. Used by the history lookup.
type ExerciseHistory struct {
	SessionID  uuid.UUID
	ExerciseID uuid.UUID
	StartedAt  time.Time
	Sets       []SessionSet
}

// RecentExerciseSets returns the occurrences of the named exercise in the
// most recent window sessions that contain it, newest session first, sets
// ordered by set index. A window of 0 means no bound.
func (r *Repo) RecentExerciseSets(ctx context.Context, name string, window int) (_ []ExerciseHistory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.recentexercisesets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))
	span.SetAttributes(attribute.Int("window", window))

	var limit *int
	if window > 0 {
		limit = &window
	}

	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.started_at, se.id, se.ord,
			ss.id, ss.exercise_id, ss.set_index, ss.reps, ss.weight, ss.is_complete
		FROM workout_session s
		JOIN session_exercise se ON se.session_id = s.id
		JOIN session_set ss ON ss.exercise_id = se.id
		WHERE se.name = $1 AND s.id IN (
			SELECT s2.id
			FROM workout_session s2
			JOIN session_exercise se2 ON se2.session_id = s2.id
			WHERE se2.name = $1
			ORDER BY s2.started_at DESC
			LIMIT $2
		)
		ORDER BY s.started_at DESC, se.ord, ss.set_index;
	`, name, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]ExerciseHistory, 0)
	for rows.Next() {
		var sessionID, exerciseID uuid.UUID
		var startedAt time.Time
		var ord int
		var set SessionSet
		if err := rows.Scan(
			&sessionID, &startedAt, &exerciseID, &ord,
			&set.ID, &set.ExerciseID, &set.SetIndex, &set.Reps, &set.Weight, &set.IsComplete,
		); err != nil {
			return nil, err
		}

		if len(history) == 0 || history[len(history)-1].ExerciseID != exerciseID {
			history = append(history, ExerciseHistory{
				SessionID:  sessionID,
				ExerciseID: exerciseID,
				StartedAt:  startedAt,
			})
		}
		last := &history[len(history)-1]
		last.Sets = append(last.Sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

// AddExercise appends an exercise (with its sets) to a live session, at the
// next contiguous order position.
func (r *Repo) AddExercise(ctx context.Context, exercise SessionExercise) (_ *SessionExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.addexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", exercise.SessionID.String()))

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

	var finished bool
	err = tx.
		QueryRow(ctx, `
			SELECT duration_seconds IS NOT NULL
			FROM workout_session
			WHERE id = $1
		`, exercise.SessionID).
		Scan(&finished)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if finished {
		return nil, ErrSessionFinished
	}

	err = tx.
		QueryRow(ctx, `
			SELECT COALESCE(MAX(ord) + 1, 0)
			FROM session_exercise
			WHERE session_id = $1
		`, exercise.SessionID).
		Scan(&exercise.Order)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		ctx,
		`INSERT INTO session_exercise (id, session_id, template_exercise_id, name, ord)
			VALUES ($1, $2, $3, $4, $5);`,
		exercise.ID, exercise.SessionID, exercise.TemplateExerciseID, exercise.Name, exercise.Order,
	)
	if err != nil {
		return nil, err
	}

	for i := range exercise.Sets {
		set := &exercise.Sets[i]
		set.ExerciseID = exercise.ID
		set.SetIndex = i
		_, err = tx.Exec(
			ctx,
			`INSERT INTO session_set (id, exercise_id, set_index, reps, weight, is_complete)
				VALUES ($1, $2, $3, $4, $5, $6);`,
			set.ID, set.ExerciseID, set.SetIndex, set.Reps, set.Weight, set.IsComplete,
		)
		if err != nil {
			return nil, err
		}
	}

	return &exercise, nil
}

// AddSet appends one blank set to a session exercise, at the next
// contiguous set index.
func (r *Repo) AddSet(ctx context.Context, exerciseID uuid.UUID) (_ *SessionSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.addset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exerciseID.String()))

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

	var exists bool
	if err = tx.
		QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM session_exercise WHERE id = $1)`, exerciseID).
		Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrExerciseNotFound
	}

	set := &SessionSet{
		ID:         uuid.New(),
		ExerciseID: exerciseID,
	}
	err = tx.
		QueryRow(ctx, `
			SELECT COALESCE(MAX(set_index) + 1, 0)
			FROM session_set
			WHERE exercise_id = $1
		`, exerciseID).
		Scan(&set.SetIndex)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		ctx,
		`INSERT INTO session_set (id, exercise_id, set_index, reps, weight, is_complete)
			VALUES ($1, $2, $3, $4, $5, $6);`,
		set.ID, set.ExerciseID, set.SetIndex, set.Reps, set.Weight, set.IsComplete,
	)
	if err != nil {
		return nil, err
	}

	return set, nil
}

func (r *Repo) UpdateSet(ctx context.Context, set *SessionSet) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.updateset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("set.id", set.ID.String()))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE session_set SET reps = $1, weight = $2, is_complete = $3 WHERE id = $4;`,
		set.Reps, set.Weight, set.IsComplete, set.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}
	return nil
}

// Complete stamps the session duration. A session can be completed exactly
// once.
func (r *Repo) Complete(ctx context.Context, id uuid.UUID, durationSeconds int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))
	span.SetAttributes(attribute.Int("duration.seconds", durationSeconds))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout_session SET duration_seconds = $1
			WHERE id = $2 AND duration_seconds IS NULL;`,
		durationSeconds, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if scanErr := r.db.
			QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM workout_session WHERE id = $1)`, id).
			Scan(&exists); scanErr != nil {
			return scanErr
		}
		if exists {
			return ErrSessionFinished
		}
		return ErrSessionNotFound
	}
	return nil
}

// Delete removes the session and everything under it. Canceling a live
// session is this same hard delete, no partial record stays behind.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_session WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ExerciseProgress returns the heaviest recorded weight per day for the
// named exercise, oldest day first.
func (r *Repo) ExerciseProgress(ctx context.Context, name string) (_ []ProgressPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.exerciseprogress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))

	rows, err := r.db.Query(ctx, `
		SELECT date_trunc('day', s.started_at) AS day, MAX(ss.weight)
		FROM workout_session s
		JOIN session_exercise se ON se.session_id = s.id
		JOIN session_set ss ON ss.exercise_id = se.id
		WHERE se.name = $1 AND (ss.reps > 0 OR ss.weight > 0)
		GROUP BY day
		ORDER BY day;
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]ProgressPoint, 0)
	for rows.Next() {
		var p ProgressPoint
		if err := rows.Scan(&p.Day, &p.MaxWeight); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

// attachGraph loads exercises and sets for the given sessions with two
// queries, instead of one pair per session.
func (r *Repo) attachGraph(ctx context.Context, sessions []*Session) error {
	if len(sessions) == 0 {
		return nil
	}

	sessionIDs := make([]uuid.UUID, 0, len(sessions))
	bySession := make(map[uuid.UUID]*Session, len(sessions))
	for _, s := range sessions {
		s.Exercises = make([]SessionExercise, 0)
		sessionIDs = append(sessionIDs, s.ID)
		bySession[s.ID] = s
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, session_id, template_exercise_id, name, ord
		FROM session_exercise
		WHERE session_id = ANY($1)
		ORDER BY session_id, ord;
	`, sessionIDs)
	if err != nil {
		return err
	}
	defer rows.Close()

	exerciseIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		var e SessionExercise
		if err := rows.Scan(&e.ID, &e.SessionID, &e.TemplateExerciseID, &e.Name, &e.Order); err != nil {
			return err
		}
		e.Sets = make([]SessionSet, 0)

		owner := bySession[e.SessionID]
		owner.Exercises = append(owner.Exercises, e)
		exerciseIDs = append(exerciseIDs, e.ID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(exerciseIDs) == 0 {
		return nil
	}

	// index only after all appends, append above may reallocate
	byExercise := make(map[uuid.UUID]*SessionExercise, len(exerciseIDs))
	for _, s := range sessions {
		for i := range s.Exercises {
			byExercise[s.Exercises[i].ID] = &s.Exercises[i]
		}
	}

	setRows, err := r.db.Query(ctx, `
		SELECT id, exercise_id, set_index, reps, weight, is_complete
		FROM session_set
		WHERE exercise_id = ANY($1)
		ORDER BY exercise_id, set_index;
	`, exerciseIDs)
	if err != nil {
		return err
	}
	defer setRows.Close()

	for setRows.Next() {
		var set SessionSet
		if err := setRows.Scan(&set.ID, &set.ExerciseID, &set.SetIndex, &set.Reps, &set.Weight, &set.IsComplete); err != nil {
			return err
		}
		owner := byExercise[set.ExerciseID]
		owner.Sets = append(owner.Sets, set)
	}
	return setRows.Err()
}
