package common

type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Message: message}
}

// NewFieldErrorResponse carries the rejected field alongside the message,
// so forms can highlight the offending input.
func NewFieldErrorResponse(field, message string) *ErrorResponse {
	return &ErrorResponse{Message: message, Field: field}
}

type SuccessResponse struct {
	Data interface{} `json:"data"`
}

func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{Data: data}
}

type Pagination struct {
	Total int64 `json:"total"`
}

type SearchResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
	Counts     interface{} `json:"counts,omitempty"`
}

func NewSearchResponse(data interface{}, total int64) *SearchResponse {
	return &SearchResponse{
		Data:       data,
		Pagination: Pagination{Total: total},
	}
}

// NewSearchResponseWithCounts attaches a counts summary for list headers.
func NewSearchResponseWithCounts(data interface{}, total int64, counts interface{}) *SearchResponse {
	resp := NewSearchResponse(data, total)
	resp.Counts = counts
	return resp
}
