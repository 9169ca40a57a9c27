package authflow

import (
	"errors"

	"github.com/fintrack/fintrack-cli/internal/client/api"
)

// UserMessage renders an authentication error as the text shown to the
// user. Backend-provided messages win; known local conditions get fixed
// texts; a discarded flow produces nothing at all.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCode):
		return "Invalid code format. Please enter exactly 6 digits."
	case errors.Is(err, api.ErrUnavailable):
		return "Unable to connect to server. Please try again later."
	case errors.Is(err, ErrBusy):
		return "Another attempt is still in progress. Please wait."
	case errors.Is(err, ErrWrongState):
		return "That step is not available right now. Please start over."
	case errors.Is(err, ErrFlowClosed):
		return ""
	}
	if apiErr, ok := api.AsAPIError(err); ok {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "The email or password you entered is incorrect."
	}
	return err.Error()
}
