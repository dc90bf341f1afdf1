package models

import "time"

// User is a row in the users table. The bcrypt digest never leaves the
// process; API responses are built through UserResponse.
type User struct {
	ID             int
	Email          string
	HashedPassword string
}

// Task is a row in the tasks table.
type Task struct {
	ID          int
	OwnerID     int
	Title       string
	Description string
	Status      bool
	CreatedAt   time.Time
}

// TaskPatch carries a partial update. A nil field means "leave unchanged",
// so an explicit empty string or false is distinguishable from an omitted one.
type TaskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *bool   `json:"status"`
}

// Empty reports whether the patch sets no fields at all.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// TaskResponse is the wire shape of a task.
type TaskResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      bool      `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	OwnerID     int       `json:"owner_id"`
}

// UserResponse is the wire shape of a user. Tasks is always present,
// empty for a fresh registration.
type UserResponse struct {
	ID    int            `json:"id"`
	Email string         `json:"email"`
	Tasks []TaskResponse `json:"tasks"`
}

func NewTaskResponse(t Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		OwnerID:     t.OwnerID,
	}
}

func NewTaskResponses(tasks []Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskResponse(t))
	}
	return out
}

func NewUserResponse(u User, tasks []Task) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Tasks: NewTaskResponses(tasks),
	}
}
