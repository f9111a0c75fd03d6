package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ProgramPlanning  = "Planning"
	ProgramActive    = "Active"
	ProgramCompleted = "Completed"
)

const (
	RegistrationPending    = "Pending"
	RegistrationApproved   = "Approved"
	RegistrationRejected   = "Rejected"
	RegistrationWaitlisted = "Waitlisted"
)

const (
	FeedbackPending  = "pending"
	FeedbackReviewed = "reviewed"
	FeedbackResolved = "resolved"
	FeedbackClosed   = "closed"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Program struct {
	ID            int64           `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	Description   string          `db:"description,omitempty" json:"description,omitempty"`
	Date          time.Time       `db:"date" json:"date"`
	TimeWindow    string          `db:"time_window,omitempty" json:"time_window,omitempty"`
	Location      string          `db:"location,omitempty" json:"location,omitempty"`
	Budget        decimal.Decimal `db:"budget" json:"budget"`
	Status        string          `db:"status" json:"status"`
	AttachmentURL string          `db:"attachment_url,omitempty" json:"attachment_url,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

type Participant struct {
	ID        int64     `db:"id" json:"id"`
	UserID    *int64    `db:"user_id,omitempty" json:"user_id,omitempty"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Age       int       `db:"age" json:"age"`
	Contact   string    `db:"contact" json:"contact"`
	Email     string    `db:"email,omitempty" json:"email,omitempty"`
	Address   string    `db:"address,omitempty" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Registration struct {
	ID               int64     `db:"id" json:"id"`
	ProgramID        int64     `db:"program_id" json:"program_id"`
	ParticipantID    int64     `db:"participant_id" json:"participant_id"`
	Status           string    `db:"registration_status" json:"registration_status"`
	RegistrationDate time.Time `db:"registration_date" json:"registration_date"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// RegistrationDetail is a registration row joined with its participant and
// program, as served to admin listings.
type RegistrationDetail struct {
	Registration
	FirstName   string `db:"first_name" json:"first_name"`
	LastName    string `db:"last_name" json:"last_name"`
	Contact     string `db:"contact" json:"contact"`
	ProgramName string `db:"program_name" json:"program_name"`
}

type Expense struct {
	ID          int64           `db:"id" json:"id"`
	ProgramID   int64           `db:"program_id" json:"program_id"`
	Description string          `db:"description" json:"description"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Date        time.Time       `db:"date" json:"date"`
	Category    string          `db:"category" json:"category"`
	Notes       string          `db:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

type Feedback struct {
	ID        int64     `db:"id" json:"id"`
	UserID    *int64    `db:"user_id,omitempty" json:"user_id,omitempty"`
	Text      string    `db:"text" json:"text"`
	Rating    *int      `db:"rating,omitempty" json:"rating,omitempty"`
	Category  string    `db:"category" json:"category"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
