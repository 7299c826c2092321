package daily

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// Registry owns the definition and ordering of a user's recurring tasks.
type Registry struct {
	Store Store
}

// List returns the user's active tasks sorted by SortOrder ascending.
func (r *Registry) List(ctx context.Context, userID uint64) ([]Task, error) {
	tasks, err := r.Store.ActiveTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].SortOrder < tasks[j].SortOrder })
	return tasks, nil
}

// Create appends a new active task after the user's current last one.
func (r *Registry) Create(ctx context.Context, userID uint64, label string) (Task, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Task{}, fmt.Errorf("%w: label is required", ErrInvalidInput)
	}

	tasks, err := r.Store.ActiveTasks(ctx, userID)
	if err != nil {
		return Task{}, err
	}
	next := 1
	for _, t := range tasks {
		if t.SortOrder >= next {
			next = t.SortOrder + 1
		}
	}

	t := Task{UserID: userID, Label: label, SortOrder: next, IsActive: true}
	if err := r.Store.CreateTask(ctx, &t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (r *Registry) Rename(ctx context.Context, userID, taskID uint64, label string) (Task, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Task{}, fmt.Errorf("%w: label is required", ErrInvalidInput)
	}

	t, err := r.Store.ActiveTask(ctx, userID, taskID)
	if err != nil {
		return Task{}, err
	}
	t.Label = label
	if err := r.Store.SaveTask(ctx, &t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Deactivate soft-deletes a task. Its completion logs stay; its sort
// order is not reused.
func (r *Registry) Deactivate(ctx context.Context, userID, taskID uint64) error {
	t, err := r.Store.ActiveTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	t.IsActive = false
	return r.Store.SaveTask(ctx, &t)
}

// Reorder moves a task one position up or down among the user's active
// tasks by swapping sort orders with its neighbor. Already at the
// boundary is a no-op, not an error.
func (r *Registry) Reorder(ctx context.Context, userID, taskID uint64, direction string) error {
	switch direction {
	case DirectionUp, DirectionDown:
	default:
		return fmt.Errorf("%w: direction must be up or down", ErrInvalidInput)
	}

	tasks, err := r.List(ctx, userID)
	if err != nil {
		return err
	}

	pos := -1
	for i, t := range tasks {
		if t.ID == taskID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return ErrNotFound
	}

	neighbor := pos - 1
	if direction == DirectionDown {
		neighbor = pos + 1
	}
	if neighbor < 0 || neighbor >= len(tasks) {
		return nil
	}

	return r.Store.SwapTaskOrders(ctx, userID, tasks[pos].ID, tasks[neighbor].ID)
}
