package dto

// ThemeRequest is the POST /api/theme body.
type ThemeRequest struct {
	Theme string `json:"theme" form:"theme"`
}

// ThemeResponse is the fixed response shape for both theme endpoints; it is
// identical on success and failure so clients never branch on status codes.
type ThemeResponse struct {
	Theme   string `json:"theme"`
	Success bool   `json:"success"`
}
