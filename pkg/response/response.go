package response

// Body is the envelope used by middleware responses.
type Body struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Error(code, message string, data interface{}) Body {
	return Body{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func Success(message string, data interface{}) Body {
	return Body{
		Code:    "OK",
		Message: message,
		Data:    data,
	}
}
