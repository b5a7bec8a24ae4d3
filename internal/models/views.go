package models

import "time"

// UserRef is the expanded form of an owner reference.
type UserRef struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// ProjectRef is the expanded form of a project reference.
type ProjectRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type ProjectView struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Owner       *UserRef   `json:"owner"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type TaskView struct {
	ID          string      `json:"_id"`
	Description string      `json:"description"`
	DueDate     *time.Time  `json:"dueDate"`
	Status      TaskStatus  `json:"status"`
	Owner       *UserRef    `json:"owner"`
	Project     *ProjectRef `json:"project"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ProjectPatch is the request body of a partial project update.
type ProjectPatch struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
	StartDate   Optional[string] `json:"startDate"`
	EndDate     Optional[string] `json:"endDate"`
	Owner       Optional[string] `json:"owner"`
}

// TaskPatch is the request body of a partial task update.
type TaskPatch struct {
	Description Optional[string] `json:"description"`
	DueDate     Optional[string] `json:"dueDate"`
	Status      Optional[string] `json:"status"`
	Project     Optional[string] `json:"project"`
	Owner       Optional[string] `json:"owner"`
}
