package models

// Role identifies who authored a chat turn
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is a single transcript turn
type ChatMessage struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
