package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ayo6706/loan-origination/internal/api/problem"
	"github.com/ayo6706/loan-origination/internal/domain"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// RespondJSON writes a JSON response.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError writes an RFC 7807 error response.
func RespondError(w http.ResponseWriter, r *http.Request, status int, problemType, message string) {
	if problemType != "" && problemType != "about:blank" && !strings.HasPrefix(problemType, "http") {
		problemType = problem.Type(problemType)
	}
	problem.Write(w, r, status, problemType, http.StatusText(status), message)
}

// respondServiceError maps field errors to `{field, message}` bodies and
// everything else to a logged 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, problemType, logMsg string) {
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		problem.WriteField(w, fe.Field, fe.Message)
		return
	}
	zap.L().Error(logMsg, zap.Error(err), zap.String("path", r.URL.Path))
	RespondError(w, r, http.StatusInternalServerError, problemType, "internal error")
}

// decodeData reads a `{"data": {...}}` envelope into dst.
func decodeData(r *http.Request, dst any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return domain.InvalidRequest("data")
	}
	trimmed := strings.TrimSpace(string(envelope.Data))
	if trimmed == "" || trimmed[0] != '{' {
		return domain.InvalidRequest("data")
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		return domain.InvalidRequest("data")
	}
	return nil
}
