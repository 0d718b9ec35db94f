package dto

type ReportRequest struct {
	SessionId      string   `json:"session_id,omitempty"`
	Sections       []string `json:"sections" validate:"min=1,dive,required"`
	IncludeSummary bool     `json:"include_summary"`
}

type ReportResponse struct {
	ReportId    string `json:"report_id"`
	DownloadUrl string `json:"download_url"`
}
