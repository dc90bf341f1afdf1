package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"taskhub/internal/models"
)

// taskColumns is the select list every task query shares. Description is a
// nullable column; absent descriptions come back as the empty string.
const taskColumns = "id, owner_id, title, COALESCE(description, ''), status, created_at"

// TaskRepository reads and writes task rows. Every query that touches an
// existing task filters on owner_id as well as id, so a task belonging to
// another user is indistinguishable from one that does not exist.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func scanTask(row *sql.Row) (models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Status, &t.CreatedAt)
	return t, err
}

// Create inserts a task for the given owner. Status defaults to false and
// created_at is assigned by the database.
func (r *TaskRepository) Create(ctx context.Context, ownerID int, title, description string) (models.Task, error) {
	row := r.db.QueryRowContext(ctx,
		"INSERT INTO tasks (owner_id, title, description) VALUES ($1, $2, $3) RETURNING "+taskColumns,
		ownerID, title, description,
	)
	return scanTask(row)
}

// ListByOwner returns the owner's tasks ordered by id, which matches
// insertion order for serial keys.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID, skip, limit int) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE owner_id = $1 ORDER BY id OFFSET $2 LIMIT $3",
		ownerID, skip, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

// AllByOwner returns every task the owner has, unpaginated. Used when a
// user payload embeds its tasks.
func (r *TaskRepository) AllByOwner(ctx context.Context, ownerID int) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE owner_id = $1 ORDER BY id",
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func collectTasks(rows *sql.Rows) ([]models.Task, error) {
	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update applies the set fields of the patch to the owner's task and
// returns the resulting row. An empty patch skips the UPDATE entirely and
// re-reads the row. Returns ErrTaskNotFound when no row matches id+owner.
func (r *TaskRepository) Update(ctx context.Context, taskID, ownerID int, patch models.TaskPatch) (models.Task, error) {
	if patch.Empty() {
		return r.byID(ctx, taskID, ownerID)
	}

	set := []string{}
	args := []interface{}{}
	if patch.Title != nil {
		args = append(args, *patch.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.Description != nil {
		args = append(args, *patch.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if patch.Status != nil {
		args = append(args, *patch.Status)
		set = append(set, fmt.Sprintf("status = $%d", len(args)))
	}
	args = append(args, taskID, ownerID)

	query := fmt.Sprintf(
		"UPDATE tasks SET %s WHERE id = $%d AND owner_id = $%d RETURNING %s",
		strings.Join(set, ", "), len(args)-1, len(args), taskColumns,
	)
	task, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

// Delete removes the owner's task. Returns ErrTaskNotFound when no row
// matches id+owner.
func (r *TaskRepository) Delete(ctx context.Context, taskID, ownerID int) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = $1 AND owner_id = $2",
		taskID, ownerID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) byID(ctx context.Context, taskID, ownerID int) (models.Task, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1 AND owner_id = $2",
		taskID, ownerID,
	)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}
