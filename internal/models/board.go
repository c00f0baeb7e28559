package models

// Column is one status column of the board.
type Column struct {
	Category Category `json:"category"`
	Tasks    []Task   `json:"tasks"`
}

// Board is the read model rendered on GET /tasks.
type Board struct {
	User    UserSummary `json:"user"`
	Columns []Column    `json:"columns"`
}
