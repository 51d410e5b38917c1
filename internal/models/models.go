package models

// UploadPayload is one uploaded file, scoped to a single request.
type UploadPayload struct {
	Data        []byte
	ContentType string
	Filename    string // informational only
}

// AnalysisResponse is the success body of an upload.
type AnalysisResponse struct {
	Text        string `json:"text"`
	Suggestions string `json:"suggestions"`
}

// ErrorResponse is the body of any rejected upload.
type ErrorResponse struct {
	Error string `json:"error"`
}
