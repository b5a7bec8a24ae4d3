// Package dashboard derives the board and overview widgets from a task
// list. Every function is pure: the same tasks and the same today always
// produce the same result.
package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/taskflow-dev/taskflow/internal/models"
)

// UrgentLimit caps the urgent-tasks widget.
const UrgentLimit = 3

// ProjectLimit caps the projects shown in the overview.
const ProjectLimit = 3

type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Column struct {
	Status models.TaskStatus `json:"status"`
	Tasks  []models.TaskView `json:"tasks"`
}

// Summary is the overview served to the caller's home screen.
type Summary struct {
	Date               string               `json:"date"`
	StatusDistribution []StatusCount        `json:"statusDistribution"`
	UrgentTasks        []models.TaskView    `json:"urgentTasks"`
	DueToday           []models.TaskView    `json:"dueToday"`
	Projects           []models.ProjectView `json:"projects"`
	Columns            []Column             `json:"columns"`
}

// Today truncates now to midnight of its calendar day, keeping the location.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

func day(t time.Time, loc *time.Location) time.Time {
	return Today(t.In(loc))
}

func normalizeStatus(s models.TaskStatus) string {
	return strings.ToUpper(strings.TrimSpace(string(s)))
}

func completed(t models.TaskView) bool {
	return normalizeStatus(t.Status) == string(models.StatusCompleted)
}

// StatusDistribution counts tasks per normalized status in first-seen order.
func StatusDistribution(tasks []models.TaskView) []StatusCount {
	out := []StatusCount{}
	index := make(map[string]int)

	for _, t := range tasks {
		name := normalizeStatus(t.Status)
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, StatusCount{Name: name})
		}
		out[i].Value++
	}

	return out
}

// UrgentTasks selects at most UrgentLimit incomplete dated tasks. Tasks due
// today come first, padded with the oldest overdue tasks. Future tasks are
// used only when nothing is due today or overdue.
func UrgentTasks(tasks []models.TaskView, today time.Time) []models.TaskView {
	today = Today(today)
	loc := today.Location()

	var dueToday, overdue, future []models.TaskView

	for _, t := range tasks {
		if completed(t) || t.DueDate == nil {
			continue
		}

		due := day(*t.DueDate, loc)

		switch {
		case due.Equal(today):
			dueToday = append(dueToday, t)
		case due.Before(today):
			overdue = append(overdue, t)
		default:
			future = append(future, t)
		}
	}

	sortByDue(dueToday)
	sortByDue(overdue)
	sortByDue(future)

	out := dueToday
	if len(out) < UrgentLimit {
		out = append(out, overdue[:min(len(overdue), UrgentLimit-len(out))]...)
	}

	if len(out) == 0 {
		out = future
	}

	if len(out) > UrgentLimit {
		out = out[:UrgentLimit]
	}

	return append([]models.TaskView{}, out...)
}

// DueToday returns the incomplete tasks due on today's calendar date.
func DueToday(tasks []models.TaskView, today time.Time) []models.TaskView {
	today = Today(today)
	out := []models.TaskView{}

	for _, t := range tasks {
		if t.DueDate != nil && !completed(t) && day(*t.DueDate, today.Location()).Equal(today) {
			out = append(out, t)
		}
	}

	return out
}

// SortByDueDate returns a copy ordered by due date with undated tasks last.
func SortByDueDate(tasks []models.TaskView) []models.TaskView {
	out := append([]models.TaskView{}, tasks...)
	sortByDue(out)
	return out
}

// GroupByStatus builds one board column per status in workflow order. Tasks
// with an unknown status are left out.
func GroupByStatus(tasks []models.TaskView) []Column {
	columns := make([]Column, 0, len(models.TaskStatuses))

	for _, status := range models.TaskStatuses {
		col := Column{Status: status, Tasks: []models.TaskView{}}
		for _, t := range tasks {
			if t.Status == status {
				col.Tasks = append(col.Tasks, t)
			}
		}
		col.Tasks = SortByDueDate(col.Tasks)
		columns = append(columns, col)
	}

	return columns
}

// Build assembles the overview for the caller's tasks and own projects.
func Build(tasks []models.TaskView, projects []models.ProjectView, today time.Time) Summary {
	today = Today(today)

	if len(projects) > ProjectLimit {
		projects = projects[:ProjectLimit]
	}

	return Summary{
		Date:               today.Format("2006-01-02"),
		StatusDistribution: StatusDistribution(tasks),
		UrgentTasks:        UrgentTasks(tasks, today),
		DueToday:           DueToday(tasks, today),
		Projects:           append([]models.ProjectView{}, projects...),
		Columns:            GroupByStatus(tasks),
	}
}

func sortByDue(tasks []models.TaskView) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].DueDate, tasks[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.Before(*b)
	})
}
