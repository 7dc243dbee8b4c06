package services

import "errors"

// Reason classifies an expected business-rule rejection.
type Reason string

const (
	ReasonNotFound           Reason = "NOT_FOUND"
	ReasonUnauthorized       Reason = "UNAUTHORIZED"
	ReasonForbidden          Reason = "FORBIDDEN"
	ReasonConflict           Reason = "CONFLICT"
	ReasonInvalid            Reason = "INVALID_INPUT"
	ReasonInvalidCredentials Reason = "INVALID_CREDENTIALS"
	ReasonInvalidToken       Reason = "INVALID_TOKEN"
	ReasonUnavailable        Reason = "SERVICE_UNAVAILABLE"
)

// Rejection is an expected outcome of an operation that declined to act.
// Any other error returned by a service is a fault.
type Rejection struct {
	Reason  Reason
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}

// Code returns the reason as an API error code.
func (r *Rejection) Code() string {
	return string(r.Reason)
}

// Is matches another Rejection with the same reason and message.
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	if !ok {
		return false
	}
	return r.Reason == t.Reason && r.Message == t.Message
}

func reject(reason Reason, message string) *Rejection {
	return &Rejection{Reason: reason, Message: message}
}

// AsRejection reports whether err is a Rejection and returns it.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

var (
	ErrUserNotFound        = reject(ReasonNotFound, "User does not exist.")
	ErrUserExists          = reject(ReasonConflict, "User already exists.")
	ErrEmailTaken          = reject(ReasonConflict, "Email is already in use.")
	ErrInvalidCredentials  = reject(ReasonInvalidCredentials, "Incorrect password or email")
	ErrIncorrectPassword   = reject(ReasonInvalidCredentials, "Incorrect password.")
	ErrInvalidToken        = reject(ReasonInvalidToken, "Invalid or expired token.")
	ErrUnauthorized        = reject(ReasonUnauthorized, "Unauthorized.")
	ErrForbidden           = reject(ReasonForbidden, "Forbidden.")
	ErrDashboardNotFound   = reject(ReasonNotFound, "Dashboard does not exist.")
	ErrTaskNotFound        = reject(ReasonNotFound, "Task does not exist.")
	ErrTaskNotOwned        = reject(ReasonUnauthorized, "Task does not exist or is not yours.")
	ErrTeamNotFound        = reject(ReasonNotFound, "Team does not exist.")
	ErrInvalidAssignee     = reject(ReasonInvalid, "User not valid.")
	ErrTeamMembersNotFound = reject(ReasonInvalid, "Some users were not found or do not exist.")

	ErrAIServiceNotConfigured = reject(ReasonUnavailable, "AI service is not configured.")
	ErrAINoTasksGenerated     = reject(ReasonUnavailable, "AI did not generate any tasks.")
)

// invalid builds a validation rejection.
func invalid(message string) *Rejection {
	return reject(ReasonInvalid, message)
}
