package models

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleTaskTracker Role = "TASK_TRACKER"
	RoleReadOnly    Role = "READ_ONLY"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTaskTracker, RoleReadOnly:
		return true
	}
	return false
}

// ParseRole accepts only the exact wire values, ignoring surrounding spaces.
func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(s))
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return r, nil
}

type TaskStatus string

const (
	StatusNew        TaskStatus = "NEW"
	StatusNotStarted TaskStatus = "NOT_STARTED"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusBlocked    TaskStatus = "BLOCKED"
	StatusCompleted  TaskStatus = "COMPLETED"
)

// TaskStatuses lists every status in board column order.
var TaskStatuses = []TaskStatus{StatusNew, StatusNotStarted, StatusInProgress, StatusBlocked, StatusCompleted}

func (s TaskStatus) Valid() bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(strings.TrimSpace(s))
	if !st.Valid() {
		return "", fmt.Errorf("invalid status %q", s)
	}
	return st, nil
}
