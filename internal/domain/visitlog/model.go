package visitlog

import "time"

// Entry is one page visit recorded by the frontend.
type Entry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
	RealName      string    `json:"real_name,omitempty"`
	TotalSolved   *int      `json:"total_solved,omitempty"`
	FullyScrolled bool      `json:"fully_scrolled"`
}

// CreateRequest starts a visit.
type CreateRequest struct {
	UserID string `json:"user_id"`
}

// UpdateRequest attaches the looked-up profile to a visit.
type UpdateRequest struct {
	ID          string `json:"id"`
	RealName    string `json:"Real_Name"`
	TotalSolved *int   `json:"Total_Solved"`
}

// ScrollRequest records whether the visitor read the whole page.
type ScrollRequest struct {
	ID            string `json:"id"`
	FullyScrolled bool   `json:"fully_scrolled"`
}

const (
	CodeInvalidInput = "invalid_input"
	CodeNotFound     = "not_found"
)
