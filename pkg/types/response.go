package types

// APIError is the error body shape returned by the backend.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError in error responses.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Page is the paginated list response contract: 1-based page and size
// query parameters in, items plus a total count out.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
