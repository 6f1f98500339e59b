package models

// MoodImage is an inspiration photo stored as a data URI
type MoodImage struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
}

func (m MoodImage) RecordID() string { return m.ID }

func (m MoodImage) WithID(id string) MoodImage {
	m.ID = id
	return m
}
