package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/benjamonnguyen/cadence"
)

const (
	SelectAllTasks = "SELECT id, title, done, created_at, updated_at FROM tasks"
	UpdateTask     = "UPDATE tasks SET title = ?, done = ?, updated_at = ? WHERE id = ?"
)

type taskEntity struct {
	ID        string
	Title     string
	Done      bool
	CreatedAt int64
	UpdatedAt int64
}

type taskRepo struct {
	dbGetter txStdLib.DBGetter
	l        *log.Logger
}

func NewTaskRepo(dbGetter txStdLib.DBGetter, logger *log.Logger) *taskRepo {
	return &taskRepo{
		dbGetter: dbGetter,
		l:        logger,
	}
}

func (r *taskRepo) AddTask(ctx context.Context, title string) (cadence.ExistingTaskRecord, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return cadence.ExistingTaskRecord{}, fmt.Errorf("provide required field 'Title'")
	}

	existingRecord := cadence.ExistingTaskRecord{
		TaskRecord:     cadence.TaskRecord{Title: title},
		ExistingRecord: cadence.NewExistingRecord(cadence.TaskID(uuid.NewString())),
	}
	e := mapToTaskEntity(existingRecord)

	args := []any{
		e.ID,
		e.Title,
		e.Done,
		e.CreatedAt,
		e.UpdatedAt,
	}
	query := "INSERT INTO tasks (id, title, done, created_at, updated_at) VALUES " + generateParameters(len(args))
	r.l.Debug("creating task", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return cadence.ExistingTaskRecord{}, err
	}

	return existingRecord, nil
}

// ListTasks returns every task in insertion order.
func (r *taskRepo) ListTasks(ctx context.Context) ([]cadence.ExistingTaskRecord, error) {
	query := SelectAllTasks + " ORDER BY created_at, rowid"
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	var tasks []cadence.ExistingTaskRecord
	for rows.Next() {
		task, err := extractTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) ToggleTask(ctx context.Context, id cadence.TaskID) (cadence.ExistingTaskRecord, error) {
	existing, err := r.GetTask(ctx, id)
	if err != nil {
		return cadence.ExistingTaskRecord{}, err
	}

	existing.Done = !existing.Done
	existing.Touch()
	e := mapToTaskEntity(existing)

	args := []any{
		e.Title,
		e.Done,
		e.UpdatedAt,
		e.ID,
	}
	r.l.Debug("updating task", "query", UpdateTask, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, UpdateTask, args...); err != nil {
		return cadence.ExistingTaskRecord{}, err
	}

	return existing, nil
}

func (r *taskRepo) DeleteTask(ctx context.Context, id cadence.TaskID) (cadence.ExistingTaskRecord, error) {
	existing, err := r.GetTask(ctx, id)
	if err != nil {
		return cadence.ExistingTaskRecord{}, err
	}

	query := "DELETE FROM tasks WHERE id = ?"
	r.l.Debug("deleting task", "query", query, "id", id)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, id); err != nil {
		return cadence.ExistingTaskRecord{}, err
	}

	return existing, nil
}

func (r *taskRepo) GetTask(ctx context.Context, id cadence.TaskID) (cadence.ExistingTaskRecord, error) {
	if id == "" {
		return cadence.ExistingTaskRecord{}, fmt.Errorf("provide id")
	}

	row := r.dbGetter(ctx).QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE id=?", SelectAllTasks), id,
	)
	return extractTask(row)
}

func extractTask(s Scannable) (cadence.ExistingTaskRecord, error) {
	var e taskEntity
	if err := s.Scan(&e.ID, &e.Title, &e.Done, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cadence.ExistingTaskRecord{}, ErrNotFound
		}
		return cadence.ExistingTaskRecord{}, err
	}

	return mapToExistingTaskRecord(e), nil
}

func mapToTaskEntity(task cadence.ExistingTaskRecord) taskEntity {
	return taskEntity{
		ID:        string(task.ID),
		Title:     task.Title,
		Done:      task.Done,
		CreatedAt: task.CreatedAt.Unix(),
		UpdatedAt: task.UpdatedAt.Unix(),
	}
}

func mapToExistingTaskRecord(e taskEntity) cadence.ExistingTaskRecord {
	return cadence.ExistingTaskRecord{
		ExistingRecord: cadence.ExistingRecord[cadence.TaskID]{
			ID:        cadence.TaskID(e.ID),
			CreatedAt: time.Unix(e.CreatedAt, 0),
			UpdatedAt: time.Unix(e.UpdatedAt, 0),
		},
		TaskRecord: cadence.TaskRecord{
			Title: e.Title,
			Done:  e.Done,
		},
	}
}
