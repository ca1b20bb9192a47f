package dto

type CreateReportRequest struct {
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Location string `json:"location"`
	Issue    string `json:"issue"`
}

type CreateReportResponse struct {
	Message  string `json:"message"`
	ReportID uint   `json:"reportId"`
}

// StatusResponse omits id and created_at when no report exists.
type StatusResponse struct {
	ID        uint   `json:"id,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
	Message   string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
