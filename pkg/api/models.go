package api

import "time"

type UserInfo struct {
	Id    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AuthResponse struct {
	Status string   `json:"status"`
	User   UserInfo `json:"user"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type EmailAuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GenerateRequest is accepted both as a JSON body and as multipart form
// fields (when a grounding file is attached).
type GenerateRequest struct {
	Topic        string `json:"topic"`
	ContentType  string `json:"content_type"`
	UserId       string `json:"user_id"`
	Mode         string `json:"mode"`
	AcademicYear string `json:"academic_year"`
}

type GenerateResponse struct {
	Content string `json:"content"`
}

type CreateDocumentRequest struct {
	UserId  string `json:"user_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CreateDocumentResponse struct {
	Status string `json:"status"`
	DocId  string `json:"doc_id"`
}

type Document struct {
	Id        string    `json:"id"`
	UserId    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListDocumentsResponse struct {
	Status    string     `json:"status"`
	Documents []Document `json:"documents"`
}

type HistoryItem struct {
	Id          string    `json:"id"`
	UserId      string    `json:"user_id"`
	Topic       string    `json:"topic"`
	ContentType string    `json:"content_type"`
	Response    string    `json:"response"`
	CreatedAt   time.Time `json:"created_at"`
	HadFile     bool      `json:"had_file"`
	Mode        string    `json:"mode"`
	PdfName     string    `json:"pdf_name,omitempty"`
}

type HistoryResponse struct {
	Status  string        `json:"status"`
	History []HistoryItem `json:"history"`
}

type ClearHistoryRequest struct {
	UserId string `json:"user_id"`
}

type ClearHistoryResponse struct {
	Status       string `json:"status"`
	DeletedCount int64  `json:"deleted_count"`
}

// UserQuery carries the user identifier on GET endpoints.
type UserQuery struct {
	UserId string `schema:"user_id"`
}

// WindowQuery parameterizes admin time series by a lookback day count.
type WindowQuery struct {
	Days int `schema:"days"`
}

type DailyLoginStats struct {
	Day         string `json:"day"`
	TotalLogins int64  `json:"totalLogins"`
	UniqueUsers int64  `json:"uniqueUsers"`
}

type DailyStatsResponse struct {
	DailyStats []DailyLoginStats `json:"daily_stats"`
}

type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Cost  float64 `json:"cost,omitempty"`
}

type FeatureUsage struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type AdminSummary struct {
	TotalUsers       int64   `json:"totalUsers"`
	ActiveUsersToday int64   `json:"activeUsersToday"`
	TotalPrompts     int64   `json:"totalPrompts"`
	TotalApiCalls    int64   `json:"totalApiCalls"`
	TotalTokens      int64   `json:"totalTokens"`
	EstimatedCost    float64 `json:"estimatedCost"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
