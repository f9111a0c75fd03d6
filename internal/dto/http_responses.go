package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wb-go/wbf/ginext"
)

const (
	FieldBadFormat     = "FIELD_BADFORMAT"
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	InternalError      = "Service is currently unavailable. Please try again later."

	ProgramNotFound       = "PROGRAM_NOT_FOUND"
	ParticipantNotFound   = "PARTICIPANT_NOT_FOUND"
	RegistrationNotFound  = "REGISTRATION_NOT_FOUND"
	AlreadyApplied        = "ALREADY_APPLIED"
	ProfileIncomplete     = "PROFILE_INCOMPLETE"
	ExpenseNotFound       = "EXPENSE_NOT_FOUND"
	FeedbackNotFound      = "FEEDBACK_NOT_FOUND"
	EmailTaken            = "EMAIL_TAKEN"
	InvalidCredentials    = "INVALID_CREDENTIALS"
	Unauthorized          = "UNAUTHORIZED"
	Forbidden             = "FORBIDDEN"
	NoExpenseData         = "NO_EXPENSE_DATA"
	AttachmentUnavailable = "ATTACHMENT_UNAVAILABLE"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type CreateProgramRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date" validate:"required"`
	TimeWindow  string          `json:"time_window"`
	Location    string          `json:"location"`
	Budget      decimal.Decimal `json:"budget" validate:"nonneg"`
	Status      string          `json:"status" validate:"omitempty,oneof=Planning Active Completed"`
}

type ProgramResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	TimeWindow    string          `json:"time_window"`
	Location      string          `json:"location"`
	Budget        decimal.Decimal `json:"budget"`
	Status        string          `json:"status"`
	AttachmentURL string          `json:"attachment_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type ProgramInfoResponse struct {
	ProgramResponse
	RegistrationCount int             `json:"registration_count"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	RemainingBudget   decimal.Decimal `json:"remaining_budget"`
	OverBudget        bool            `json:"over_budget"`
}

type ParticipantRequest struct {
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
	Age       int    `json:"age" validate:"required,gte=1,lte=120"`
	Contact   string `json:"contact" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Address   string `json:"address"`
}

// ProfileRequest is the self-service profile form. Unlike ParticipantRequest
// every field is optional: an applicant may save a partial profile and is
// only stopped at apply time, with the missing fields listed.
type ProfileRequest struct {
	FirstName string `json:"first_name" validate:"max=255"`
	LastName  string `json:"last_name" validate:"max=255"`
	Age       int    `json:"age" validate:"omitempty,gte=1,lte=120"`
	Contact   string `json:"contact"`
	Email     string `json:"email" validate:"omitempty,email"`
	Address   string `json:"address"`
}

type ParticipantResponse struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id,omitempty"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Age       int       `json:"age"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AdminAddRegistrationRequest struct {
	ParticipantID int64 `json:"participant_id" validate:"required"`
}

type SetRegistrationStatusRequest struct {
	ProgramID     int64  `json:"program_id" validate:"required"`
	ParticipantID int64  `json:"participant_id" validate:"required"`
	Status        string `json:"status" validate:"required,oneof=Pending Approved Rejected Waitlisted"`
}

type RegistrationResponse struct {
	ID               int64     `json:"id"`
	ProgramID        int64     `json:"program_id"`
	ParticipantID    int64     `json:"participant_id"`
	Status           string    `json:"registration_status"`
	RegistrationDate time.Time `json:"registration_date"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type RegistrationDetailResponse struct {
	RegistrationResponse
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Contact     string `json:"contact"`
	ProgramName string `json:"program_name"`
}

type CreateExpenseRequest struct {
	ProgramID   int64           `json:"program_id" validate:"required"`
	Description string          `json:"description" validate:"required,max=255"`
	Amount      decimal.Decimal `json:"amount" validate:"nonneg"`
	Date        time.Time       `json:"date" validate:"required"`
	Category    string          `json:"category" validate:"required,max=100"`
	Notes       string          `json:"notes"`
}

type ExpenseResponse struct {
	ID          int64           `json:"id"`
	ProgramID   int64           `json:"program_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type GroupStatResponse struct {
	Key        string          `json:"key"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
	Percentage string          `json:"percentage"`
}

type BudgetSummaryResponse struct {
	ExpenseCount int                 `json:"expense_count"`
	Allocated    decimal.Decimal     `json:"allocated"`
	Total        decimal.Decimal     `json:"total"`
	Remaining    decimal.Decimal     `json:"remaining"`
	Overspent    bool                `json:"overspent"`
	ByCategory   []GroupStatResponse `json:"by_category"`
}

type CreateFeedbackRequest struct {
	Text     string `json:"text" validate:"required"`
	Rating   *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Category string `json:"category" validate:"required,max=100"`
}

type SetFeedbackStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed resolved closed"`
}

type FeedbackResponse struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Text      string    `json:"text"`
	Rating    *int      `json:"rating,omitempty"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AttachmentResponse struct {
	URL string `json:"url"`
}

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func BadResponseError(c *ginext.Context, code, desc string) {
	c.JSON(400, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func InternalServerError(c *ginext.Context) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: ServiceUnavailable,
			Desc: InternalError,
		},
	})
}

func UnauthorizedError(c *ginext.Context, desc string) {
	c.JSON(401, Response{
		Status: "error",
		Error: &Error{
			Code: Unauthorized,
			Desc: desc,
		},
	})
}

func ForbiddenError(c *ginext.Context) {
	c.JSON(403, Response{
		Status: "error",
		Error: &Error{
			Code: Forbidden,
			Desc: "Admin access required",
		},
	})
}

func NotFoundError(c *ginext.Context, code, desc string) {
	c.JSON(404, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func ProgramNotFoundError(c *ginext.Context) {
	NotFoundError(c, ProgramNotFound, "Program not found")
}

func ParticipantNotFoundError(c *ginext.Context) {
	NotFoundError(c, ParticipantNotFound, "Participant not found")
}

func RegistrationNotFoundError(c *ginext.Context) {
	NotFoundError(c, RegistrationNotFound, "No registration exists for this participant and program")
}

// AlreadyAppliedError is informational, not destructive: the existing
// registration is returned alongside so the caller can show its status.
func AlreadyAppliedError(c *ginext.Context, existing any) {
	c.JSON(409, Response{
		Status: "error",
		Error: &Error{
			Code: AlreadyApplied,
			Desc: "Already applied to this program",
		},
		Data: existing,
	})
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(200, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(201, Response{
		Status: "ok",
		Data:   data,
	})
}
