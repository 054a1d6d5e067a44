package mux

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/sirupsen/logrus"

	"videopoker-server/pkg/economy"
)

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if !isJSON(r.Header.Get("Content-Type")) {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

// isJSON reports whether the media type is JSON, ignoring parameters such as charset
func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == "application/json" || mediaType == "text/json"
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code,omitempty"`
}

// statusCode maps an economy error to an HTTP status
func statusCode(err error) int {
	if errors.Is(err, economy.ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}

	switch economy.KindOf(err) {
	case economy.KindValidation:
		return http.StatusBadRequest
	case economy.KindNotFound:
		return http.StatusNotFound
	case economy.KindAuthorization:
		return http.StatusForbidden
	case economy.KindResourceExhausted:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err with the status of its kind
func writeError(w http.ResponseWriter, err error) {
	writeJSONError(w, statusCode(err), err)
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg, code string

	if statusCode < 500 && err != nil {
		msg = err.Error()
		code = economy.CodeOf(err)
		if code == "internal" {
			code = ""
		}
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
		Code:       code,
	})
}
