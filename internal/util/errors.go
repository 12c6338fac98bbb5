package util

import (
	"errors"
	"net/http"
)

var (
	// authentication
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionExpired     = errors.New("session expired, please log in again")

	// conflicts
	ErrDuplicateUser   = errors.New("username already taken")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrAlreadyReviewed = errors.New("answer already reviewed")
	ErrQuestionInUse   = errors.New("question has submitted answers and cannot be deleted")
	ErrBonusLocked     = errors.New("no bonus question unlocked yet")

	// validation
	ErrEmptyAnswer   = errors.New("answer must include text or an image")
	ErrMissingImage  = errors.New("this question requires an image answer")
	ErrImageTooLarge = errors.New("image must be smaller than 5MB")
	ErrInvalidPoints = errors.New("points must be a positive number")
	ErrEmptyQuestion = errors.New("question text is required")
	ErrInvalidRole   = errors.New("role must be participant or admin")

	// not found
	ErrUserNotFound     = errors.New("user not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
)

var errStatus = map[error]int{
	ErrInvalidCredentials: http.StatusUnauthorized,
	ErrSessionExpired:     http.StatusUnauthorized,
	ErrDuplicateUser:      http.StatusConflict,
	ErrAlreadyAnswered:    http.StatusConflict,
	ErrAlreadyReviewed:    http.StatusConflict,
	ErrQuestionInUse:      http.StatusConflict,
	ErrBonusLocked:        http.StatusConflict,
	ErrEmptyAnswer:        http.StatusBadRequest,
	ErrMissingImage:       http.StatusBadRequest,
	ErrImageTooLarge:      http.StatusBadRequest,
	ErrInvalidPoints:      http.StatusBadRequest,
	ErrEmptyQuestion:      http.StatusBadRequest,
	ErrInvalidRole:        http.StatusBadRequest,
	ErrUserNotFound:       http.StatusNotFound,
	ErrQuestionNotFound:   http.StatusNotFound,
	ErrAnswerNotFound:     http.StatusNotFound,
}

// HTTPStatus maps a known domain error to its response status. The second
// return is false for unexpected errors, which must surface as 500 and never
// as success.
func HTTPStatus(err error) (int, bool) {
	for sentinel, status := range errStatus {
		if errors.Is(err, sentinel) {
			return status, true
		}
	}
	return 0, false
}
