package uc

import (
	"fmt"
	"net/http"
)

// Response is the outcome of one verb invocation: a status code plus
// optional detail appended to the reason phrase.
type Response struct {
	Status int
	Detail string
}

// Respond builds a response, formatting any detail values after the
// status line.
func Respond(status int, detail ...interface{}) *Response {
	r := &Response{Status: status}
	if len(detail) > 0 {
		r.Detail = fmt.Sprint(detail...)
	}
	return r
}

// StatusLine renders the "NNN Reason" form expected by the dispatcher,
// e.g. "409 Conflict document name already taken".
func (r *Response) StatusLine() string {
	line := fmt.Sprintf("%d %s", r.Status, http.StatusText(r.Status))
	if r.Detail != "" {
		line += " " + r.Detail
	}
	return line
}

// OK reports whether the response is a success status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}
