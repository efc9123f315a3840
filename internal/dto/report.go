package dto

// GenerateReportRequest carries the closed due-date interval for the exported
// report. Bounds are validated by the service so a missing bound maps to the
// report-specific error rather than a generic binding failure.
type GenerateReportRequest struct {
	StartDate string `json:"startDate"` // YYYY-MM-DD
	EndDate   string `json:"endDate"`   // YYYY-MM-DD
}
