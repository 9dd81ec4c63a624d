package client

import "strings"

// Kind classifies the result of one client call.
type Kind int

const (
	Success Kind = iota
	NotFound
	Conflict
	TooLarge
	BadRequest
	ServerError
	UnknownError
	TransportError
)

var kindNames = map[Kind]string{
	Success:        "success",
	NotFound:       "not_found",
	Conflict:       "conflict",
	TooLarge:       "too_large",
	BadRequest:     "bad_request",
	ServerError:    "server_error",
	UnknownError:   "unknown_error",
	TransportError: "transport_error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown_error"
}

// Outcome is what a client call reports back. Calls never return a bare
// error: transport failures are an Outcome too, with Status 0 and Err set.
type Outcome struct {
	Kind    Kind
	Status  int
	Body    string
	Message string
	Err     error
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool {
	return o.Kind == Success
}

// Names splits the body of a successful listing. It returns nil for any
// other outcome.
func (o Outcome) Names() []string {
	if o.Kind != Success || o.Body == "" {
		return nil
	}
	return strings.Split(o.Body, ",")
}
