package provisioning

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"provisioning-dashboard/internal/store"
)

// Error strings double as response messages, so the login pair keeps the
// wording of the existing deployment.
var (
	ErrUnknownNIK      = errors.New("NIK tidak ditemukan")
	ErrBadPassword     = errors.New("Password salah")
	ErrMissingToken    = errors.New("Token required")
	ErrInvalidToken    = errors.New("Invalid token")
	ErrInvalidTaskType = errors.New("Invalid task type")
)

// storeTimeout bounds every store round-trip; the handlers otherwise block
// for as long as the driver would.
const storeTimeout = 5 * time.Second

type LoginResult struct {
	Token    string
	NIK      string
	Name     string
	Division string
}

type Service interface {
	Login(ctx context.Context, nik, password string) (LoginResult, error)
	Authenticate(ctx context.Context, token string) (string, error)
	CreateTask(ctx context.Context, nik string, taskType TaskType, payload map[string]any) (string, error)
	ListTasks(ctx context.Context, nik string) ([]Task, error)
	SeedEmployees(ctx context.Context) error
}

type service struct {
	employees EmployeeRepository
	sessions  SessionRepository
	tasks     TaskRepository
}

func NewService(employees EmployeeRepository, sessions SessionRepository, tasks TaskRepository) Service {
	return &service{
		employees: employees,
		sessions:  sessions,
		tasks:     tasks,
	}
}

// Login resolves the employee, compares the plaintext password and on success
// persists a fresh session. Unknown NIK and wrong password stay distinct
// failures for behavioral compatibility with the existing dashboard.
func (s *service) Login(ctx context.Context, nik, password string) (LoginResult, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	employee, err := s.employees.FindByNIK(ctx, nik)
	if errors.Is(err, store.ErrNotFound) {
		return LoginResult{}, ErrUnknownNIK
	}
	if err != nil {
		return LoginResult{}, err
	}

	if employee.Password != password {
		return LoginResult{}, ErrBadPassword
	}

	token, err := newSessionToken()
	if err != nil {
		return LoginResult{}, err
	}
	if err := s.sessions.Create(ctx, Session{Token: token, NIK: employee.NIK}); err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token:    token,
		NIK:      employee.NIK,
		Name:     employee.Name,
		Division: employee.Division,
	}, nil
}

// newSessionToken returns 16 bytes of crypto-random data hex-encoded: an
// opaque 32-character token.
func newSessionToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Authenticate resolves a bearer token to the NIK that logged in. An empty
// token fails before any store access. The employee behind the session is
// not re-checked for existence or is_active.
func (s *service) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	sess, err := s.sessions.FindByToken(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", err
	}
	return sess.NIK, nil
}

// CreateTask validates the type against the closed enum and persists a single
// pending record. Nothing downstream is triggered; tasks are inert.
func (s *service) CreateTask(ctx context.Context, nik string, taskType TaskType, payload map[string]any) (string, error) {
	if !ValidTaskType(taskType) {
		return "", ErrInvalidTaskType
	}
	if payload == nil {
		payload = map[string]any{}
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return s.tasks.Create(ctx, Task{
		NIK:     nik,
		Type:    taskType,
		Status:  StatusPending,
		Payload: payload,
	})
}

func (s *service) ListTasks(ctx context.Context, nik string) ([]Task, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return s.tasks.ListByOwner(ctx, nik)
}

// SeedEmployees inserts the two demo employees unless their NIK already
// exists. Runs once per process start; purely a demo bootstrap.
func (s *service) SeedEmployees(ctx context.Context) error {
	seeds := []Employee{
		{NIK: "EMP001", Name: "Demo User", Division: "IT", Password: "12345", IsActive: true},
		{NIK: "555501254121", Name: "User 555501254121", Division: "IT", Password: "12345", IsActive: true},
	}

	for _, e := range seeds {
		if _, err := s.employees.SeedIfAbsent(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
