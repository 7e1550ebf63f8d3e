package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Kind is the failure category a caller branches on.
type Kind int

const (
	// KindUnclassified covers every failure not listed below. The
	// underlying error is kept for logging.
	KindUnclassified Kind = iota
	// KindConflict is an HTTP 409, e.g. a duplicate email on registration.
	KindConflict
	// KindServerMessage is an HTTP error whose body carries readable text.
	KindServerMessage
	// KindNetworkUnavailable means no response was received at all.
	KindNetworkUnavailable
	// KindServerFault is an HTTP 500 from the result submission endpoint.
	KindServerFault
)

func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindServerMessage:
		return "server_message"
	case KindNetworkUnavailable:
		return "network_unavailable"
	case KindServerFault:
		return "server_fault"
	default:
		return "unclassified"
	}
}

const (
	msgConflict           = "duplicate resource"
	msgNetworkUnavailable = "server unreachable"
	msgUnclassified       = "operation failed"
	faultPrefix           = "Server Error: "
	faultDefault          = "Could not submit assessment. Please try again."

	maxMessageLen = 512
)

// Error is the only error type Client methods return.
type Error struct {
	Op   string
	Kind Kind
	// Status is the HTTP status, 0 when no response was received.
	Status int
	// Message is safe to show to a user.
	Message string
	// Body is the upstream response body, trimmed.
	Body string
	Err  error
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrConflict           = &Error{Kind: KindConflict, Message: msgConflict}
	ErrServerMessage      = &Error{Kind: KindServerMessage, Message: "server message"}
	ErrNetworkUnavailable = &Error{Kind: KindNetworkUnavailable, Message: msgNetworkUnavailable}
	ErrServerFault        = &Error{Kind: KindServerFault, Message: "server fault"}
	ErrUnclassified       = &Error{Kind: KindUnclassified, Message: msgUnclassified}
)

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the package sentinels by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Op == "" && t.Kind == e.Kind
}

// KindOf returns the kind carried by err, KindUnclassified for anything that
// is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnclassified
}

func unclassified(op string, status int, err error) *Error {
	return &Error{Op: op, Kind: KindUnclassified, Status: status, Message: msgUnclassified, Err: err}
}

// classify maps a failed round trip onto a Kind. status is 0 when no
// response arrived; err is the transport error in that case.
func classify(op string, faultOn500 bool, status int, body []byte, err error) *Error {
	if status == 0 {
		if errors.Is(err, context.Canceled) {
			return unclassified(op, 0, err)
		}
		return &Error{Op: op, Kind: KindNetworkUnavailable, Message: msgNetworkUnavailable, Err: err}
	}
	if err != nil {
		return unclassified(op, status, err)
	}

	raw := string(bytes.TrimSpace(body))
	text := serverMessage(body)
	switch {
	case status == http.StatusConflict:
		return &Error{Op: op, Kind: KindConflict, Status: status, Message: msgConflict, Body: raw}
	case status == http.StatusInternalServerError && faultOn500:
		detail := text
		if detail == "" && utf8.ValidString(raw) && !strings.HasPrefix(raw, "<") {
			detail = clip(raw)
		}
		if detail == "" {
			detail = faultDefault
		}
		return &Error{Op: op, Kind: KindServerFault, Status: status, Message: faultPrefix + detail, Body: raw}
	case text != "":
		return &Error{Op: op, Kind: KindServerMessage, Status: status, Message: text, Body: raw}
	default:
		e := unclassified(op, status, fmt.Errorf("unexpected status %d", status))
		e.Body = raw
		return e
	}
}

var messageKeys = []string{"message", "error", "title", "detail"}

// serverMessage pulls readable text out of an error body: a JSON string, a
// JSON object with one of messageKeys, or plain text. HTML pages, arrays and
// binary bodies yield "".
func serverMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || !utf8.Valid(trimmed) {
		return ""
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return clip(s)
		}
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return ""
		}
		for _, key := range messageKeys {
			for k, v := range obj {
				if !strings.EqualFold(k, key) {
					continue
				}
				var s string
				if err := json.Unmarshal(v, &s); err == nil && strings.TrimSpace(s) != "" {
					return clip(s)
				}
			}
		}
		return ""
	case '[', '<':
		return ""
	}
	return clip(string(trimmed))
}

func clip(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxMessageLen {
		return s
	}
	cut := maxMessageLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
