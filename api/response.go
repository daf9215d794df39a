package api

import (
	"encoding/json"
	"net/http"
)

// Business codes carried in the envelope. The HTTP status is always 200.
const (
	CodeOK             = 200
	CodeSuccess        = 210
	CodeBadRequest     = 400
	CodeTokenInvalid   = 401
	CodeForbidden      = 403
	CodeNotFound       = 404
	CodeUserExists     = 409
	CodeUserMissing    = 410
	CodeIDExists       = 411
	CodeIDMissing      = 412
	CodeMissingParams  = 413
	CodeUnknownField   = 415
	CodeBadCredentials = 416
	CodeServerError    = 500
	CodeFailed         = 510
)

var codeText = map[int]string{
	CodeOK:             "OK",
	CodeSuccess:        "Success",
	CodeBadRequest:     "Request error",
	CodeTokenInvalid:   "Token is invalid, please log in again",
	CodeForbidden:      "No permission yet",
	CodeNotFound:       "Not found",
	CodeUserExists:     "User already exists",
	CodeUserMissing:    "User does not exist",
	CodeIDExists:       "Id already exists",
	CodeIDMissing:      "Id does not exist",
	CodeMissingParams:  "Missing required parameters",
	CodeUnknownField:   "Field does not exist",
	CodeBadCredentials: "Wrong user name or password",
	CodeServerError:    "Server error, please try again later",
	CodeFailed:         "Failed, please try again later",
}

// CodeText returns the fixed message for code, or "" if unknown.
func CodeText(code int) string {
	return codeText[code]
}

// Envelope is the body of every API response.
type Envelope struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

// respond writes an envelope. An empty msg falls back to the code's text.
func respond(w http.ResponseWriter, code int, data any, msg string) {
	if msg == "" {
		msg = CodeText(code)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(Envelope{Code: code, Msg: msg, Data: data})
}
