package provisioning

import "go.mongodb.org/mongo-driver/bson/primitive"

// TaskType is the closed set of provisioning actions the dashboard accepts.
type TaskType string

const (
	TypeInstallPackages TaskType = "install_packages"
	TypeActivateWindows TaskType = "activate_windows"
	TypeActivateOffice  TaskType = "activate_office"
)

func ValidTaskType(t TaskType) bool {
	switch t {
	case TypeInstallPackages, TypeActivateWindows, TypeActivateOffice:
		return true
	}
	return false
}

// TaskStatus covers the full lifecycle stored data may carry. Only
// StatusPending is ever written by this service; the remaining values keep
// records produced by an external worker representable.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
	StatusFailed     TaskStatus = "failed"
)

// Employee is an identity record in the "employee" collection. The password
// is stored in plaintext, carried over from the existing deployment.
type Employee struct {
	NIK      string `bson:"nik" json:"nik"`
	Name     string `bson:"name,omitempty" json:"name,omitempty"`
	Division string `bson:"division,omitempty" json:"division,omitempty"`
	Password string `bson:"password" json:"-"`
	IsActive bool   `bson:"is_active" json:"is_active"`
}

// Session binds a bearer token to an employee NIK. Sessions never expire and
// there is no logout; they live until the store is cleared.
type Session struct {
	Token string `bson:"token" json:"token"`
	NIK   string `bson:"nik" json:"nik"`
}

// Task is an inert provisioning request record in the "task" collection.
// The store-assigned _id is exposed as "id" on the API.
type Task struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	NIK     string             `bson:"nik" json:"nik"`
	Type    TaskType           `bson:"type" json:"type"`
	Status  TaskStatus         `bson:"status" json:"status"`
	Payload map[string]any     `bson:"payload" json:"payload"`
}

// Divisions is the static division list served by the API.
var Divisions = []string{"IT", "Finance", "HR", "Marketing", "Operations"}
