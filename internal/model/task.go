package model

// Task is the domain model for a to-do entry.
// Note is free text and takes no part in search or sort.
type Task struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Note string `json:"note"`
}
