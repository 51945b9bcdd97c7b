package marketsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("market: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// parseErrorResponse extracts the message from {"error"}, {"message"} or a
// bare JSON string body.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	var bare string

	switch {
	case json.Unmarshal(body, &envelope) == nil && (envelope.Error != "" || envelope.Message != ""):
		apiErr.Message = envelope.Error
		if apiErr.Message == "" {
			apiErr.Message = envelope.Message
		}
	case json.Unmarshal(body, &bare) == nil:
		apiErr.Message = bare
	default:
		apiErr.Message = string(body)
	}
	return apiErr
}
