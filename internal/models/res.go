package models

import "encoding/json"

// ApiResponse is the envelope every endpoint writes. Data keys are
// flattened next to success and message.
type ApiResponse struct {
	Success bool
	Message string
	Data    map[string]any
}

func (r ApiResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Data)+2)
	for k, v := range r.Data {
		out[k] = v
	}
	out["success"] = r.Success
	if r.Message != "" {
		out["message"] = r.Message
	}
	return json.Marshal(out)
}

func SuccessResponse(message string, data map[string]any) ApiResponse {
	return ApiResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string) ApiResponse {
	return ApiResponse{
		Success: false,
		Message: message,
	}
}
