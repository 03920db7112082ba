package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/notify"
	"go.uber.org/zap"
)

// AddTask validates in, assigns an id and timestamps, and puts the task first.
func (r *Repository) AddTask(ctx context.Context, in model.TaskInput) (model.Task, error) {
	in = in.WithDefaults()
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}
	if err := r.checkCategoryRef(in.CategoryID); err != nil {
		return model.Task{}, err
	}
	now := r.now()
	task := model.Task{
		ID: r.uniqueID(func(id string) bool {
			return r.taskIndex(id) >= 0
		}),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}.Clone()

	next := r.store.Clone()
	next.Tasks = append([]model.Task{task}, next.Tasks...)
	r.commit(ctx, "add task", next)
	r.log.Info("task added", zap.String("id", task.ID), zap.String("status", string(task.Status)))
	r.emit(notify.Signal{Op: notify.OpAdded, Entity: notify.EntityTask, Name: task.Title})
	return task.Clone(), nil
}

// UpdateTask replaces the task with the same id. CreatedAt is kept from the
// stored task and UpdatedAt is stamped. A missing id reports false.
func (r *Repository) UpdateTask(ctx context.Context, task model.Task) (bool, error) {
	i := r.taskIndex(task.ID)
	if i < 0 {
		r.log.Info("update of unknown task", zap.String("id", task.ID))
		r.emit(notify.Signal{Op: notify.OpNotFound, Entity: notify.EntityTask, Name: task.Title, Level: notify.LevelInfo})
		return false, nil
	}
	task = task.Clone()
	task.CreatedAt = r.store.Tasks[i].CreatedAt
	task.UpdatedAt = r.stamp(task.CreatedAt)
	if err := task.Validate(); err != nil {
		return false, err
	}
	// A reference already on the stored task is kept even if it dangles.
	if prev := r.store.Tasks[i].CategoryID; prev == nil || task.CategoryID == nil || *prev != *task.CategoryID {
		if err := r.checkCategoryRef(task.CategoryID); err != nil {
			return false, err
		}
	}

	next := r.store.Clone()
	next.Tasks[i] = task
	r.commit(ctx, "update task", next)
	r.emit(notify.Signal{Op: notify.OpUpdated, Entity: notify.EntityTask, Name: task.Title})
	return true, nil
}

// SetTaskStatus moves a task to status.
func (r *Repository) SetTaskStatus(ctx context.Context, id string, status model.Status) (bool, error) {
	if !status.IsValid() {
		return false, fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}
	task, ok := r.Task(id)
	if !ok {
		return r.UpdateTask(ctx, model.Task{ID: id, Status: status})
	}
	task.Status = status
	return r.UpdateTask(ctx, task)
}

// DeleteTask removes the task with id and reports whether one existed.
func (r *Repository) DeleteTask(ctx context.Context, id string) bool {
	i := r.taskIndex(id)
	name := ""
	if i >= 0 {
		name = r.store.Tasks[i].Title
		next := r.store.Clone()
		next.Tasks = slices.Delete(next.Tasks, i, i+1)
		r.commit(ctx, "delete task", next)
	} else {
		r.log.Info("delete of unknown task", zap.String("id", id))
	}
	r.emit(notify.Signal{Op: notify.OpDeleted, Entity: notify.EntityTask, Name: name})
	return i >= 0
}

// TasksInCategory returns the tasks referencing category id in store order.
func (r *Repository) TasksInCategory(id string) []model.Task {
	var out []model.Task
	for _, t := range r.store.Tasks {
		if t.InCategory(id) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// checkCategoryRef rejects a reference to a category that does not exist.
func (r *Repository) checkCategoryRef(id *string) error {
	if id == nil {
		return nil
	}
	if _, ok := r.Category(*id); !ok {
		return fmt.Errorf("%w: %q", model.ErrUnknownCategory, *id)
	}
	return nil
}
