package provisioning

import (
	"context"
	"errors"

	"provisioning-dashboard/internal/store"
)

// taskListLimit caps owner-scoped listings; anything beyond it is silently
// truncated.
const taskListLimit = 50

type EmployeeRepository interface {
	FindByNIK(ctx context.Context, nik string) (Employee, error)
	SeedIfAbsent(ctx context.Context, e Employee) (bool, error)
}

type SessionRepository interface {
	Create(ctx context.Context, s Session) error
	FindByToken(ctx context.Context, token string) (Session, error)
}

type TaskRepository interface {
	Create(ctx context.Context, t Task) (string, error)
	ListByOwner(ctx context.Context, nik string) ([]Task, error)
}

type employeeRepository struct {
	store store.Store
}

func NewEmployeeRepository(s store.Store) EmployeeRepository {
	return &employeeRepository{store: s}
}

func (r *employeeRepository) FindByNIK(ctx context.Context, nik string) (Employee, error) {
	var e Employee
	err := r.store.FindOne(ctx, store.CollectionEmployee, store.Filter{"nik": nik}, &e)
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (r *employeeRepository) SeedIfAbsent(ctx context.Context, e Employee) (bool, error) {
	var existing Employee
	err := r.store.FindOne(ctx, store.CollectionEmployee, store.Filter{"nik": e.NIK}, &existing)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	if _, err := r.store.Insert(ctx, store.CollectionEmployee, e); err != nil {
		return false, err
	}
	return true, nil
}

type sessionRepository struct {
	store store.Store
}

func NewSessionRepository(s store.Store) SessionRepository {
	return &sessionRepository{store: s}
}

func (r *sessionRepository) Create(ctx context.Context, s Session) error {
	_, err := r.store.Insert(ctx, store.CollectionSession, s)
	return err
}

func (r *sessionRepository) FindByToken(ctx context.Context, token string) (Session, error) {
	var s Session
	err := r.store.FindOne(ctx, store.CollectionSession, store.Filter{"token": token}, &s)
	if err != nil {
		return Session{}, err
	}
	return s, nil
}

type taskRepository struct {
	store store.Store
}

func NewTaskRepository(s store.Store) TaskRepository {
	return &taskRepository{store: s}
}

func (r *taskRepository) Create(ctx context.Context, t Task) (string, error) {
	return r.store.Insert(ctx, store.CollectionTask, t)
}

func (r *taskRepository) ListByOwner(ctx context.Context, nik string) ([]Task, error) {
	var tasks []Task
	err := r.store.Find(ctx, store.CollectionTask, store.Filter{"nik": nik}, taskListLimit, &tasks)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
