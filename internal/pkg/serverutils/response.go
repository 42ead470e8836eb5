package serverutils

type Response[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

type ErrorBody struct {
	Success bool     `json:"success"`
	Code    int      `json:"code"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func SuccessResponse[T any](message string, data T) *Response[T] {
	return &Response[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string, details ...string) *ErrorBody {
	return &ErrorBody{
		Success: false,
		Code:    code,
		Error:   message,
		Details: details,
	}
}
