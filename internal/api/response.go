// internal/api/response.go
//
// Response envelope shared by every endpoint.
//
// Context
// -------
// Success and error responses use one shape:
//
//	{ "header": {...}, "result": ..., "meta": {...}? }
//
// The header carries either {success:true, message} or
// {success:false, err_code, err_msg}; never both sets.  meta appears only
// on paginated responses.
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/mobilepost/internal/apierr"
)

// Header is the success-or-error discriminator of every response.
type Header struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	ErrCode string `json:"err_code,omitempty"`
	ErrMsg  string `json:"err_msg,omitempty"`
}

// Envelope is the full response body.
type Envelope struct {
	Header Header `json:"header"`
	Meta   any    `json:"meta,omitempty"`
	Result any    `json:"result"`
}

// writeJSON marshals the envelope with the given status.
func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		zap.S().Errorw("response encode failed", "err", err)
	}
}

// ok writes a success envelope.
func ok(w http.ResponseWriter, message string, result any) {
	writeJSON(w, http.StatusOK, Envelope{
		Header: Header{Success: true, Message: message},
		Result: result,
	})
}

// okPage writes a success envelope with pagination meta.
func okPage(w http.ResponseWriter, message string, result, meta any) {
	writeJSON(w, http.StatusOK, Envelope{
		Header: Header{Success: true, Message: message},
		Meta:   meta,
		Result: result,
	})
}

// fail coerces err into the taxonomy and writes the error envelope.
func fail(w http.ResponseWriter, err error) {
	ae := apierr.From(err)
	writeJSON(w, ae.Status(), Envelope{
		Header: Header{Success: false, ErrCode: string(ae.Code), ErrMsg: ae.Message},
		Result: nil,
	})
}
