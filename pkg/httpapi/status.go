package httpapi

import (
	"net/http"

	"github.com/iota-uz/iam-console/pkg/serrors"
)

// StatusCodes maps error codes to HTTP statuses. Unknown codes map to 500.
type StatusCodes map[string]int

func (s StatusCodes) Status(code string) int {
	if status, ok := s[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteServiceError writes err in the error envelope. Coded errors keep their code and
// message; anything else is reported as INTERNAL_SERVER_ERROR without details.
func WriteServiceError(w http.ResponseWriter, codes StatusCodes, err error, meta map[string]string) error {
	code, ok := serrors.Code(err)
	if !ok {
		return WriteError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error", meta)
	}
	status := codes.Status(code)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	return WriteError(w, status, code, message, meta)
}
