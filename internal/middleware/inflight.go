package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"

	"github.com/ayush/edusync-gateway/internal/render"
)

// MsgInFlight is returned while an identical submission is still running.
const MsgInFlight = "A request is already in progress. Please wait."

// IdempotencyHeader lets a form name its submission explicitly.
const IdempotencyHeader = "Idempotency-Key"

// maxFingerprint is how much of a body is hashed; longer bodies are told
// apart by their length as well.
const maxFingerprint = 1 << 20

// Guard claims a key for the duration of one request.
type Guard interface {
	Acquire(ctx context.Context, key string) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

// InFlight lets one copy of a mutating request run at a time and answers
// 429 to repeats. A submission is identified by the Idempotency-Key header,
// or else by a hash of its body, together with the client address, method
// and path. Different submissions from one address run side by side. Reads
// pass straight through. If the guard itself fails the request is let
// through.
//
// It must run before anything that rewrites RemoteAddr from client headers.
func InFlight(guard Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			id, err := submissionID(r)
			if err != nil {
				render.Message(w, http.StatusBadRequest, "could not read request body")
				return
			}
			key := clientHost(r) + " " + r.Method + " " + r.URL.Path + " " + id

			token, ok, err := guard.Acquire(r.Context(), key)
			if err != nil {
				log.Printf("in-flight guard unavailable: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				render.Message(w, http.StatusTooManyRequests, MsgInFlight)
				return
			}
			defer func() {
				if err := guard.Release(context.WithoutCancel(r.Context()), key, token); err != nil {
					log.Printf("in-flight release %q: %v", key, err)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// submissionID names the submission r carries. The body is put back so the
// handler still reads all of it.
func submissionID(r *http.Request) (string, error) {
	if v := r.Header.Get(IdempotencyHeader); v != "" {
		return "key:" + v, nil
	}
	if r.Body == nil || r.Body == http.NoBody {
		return "empty", nil
	}

	head, err := io.ReadAll(io.LimitReader(r.Body, maxFingerprint+1))
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(head)
	id := "body:" + hex.EncodeToString(sum[:])
	if len(head) > maxFingerprint {
		id += ":" + strconv.FormatInt(r.ContentLength, 10)
	}
	r.Body = readCloser{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}
	return id, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

// clientHost strips the port from the socket peer address.
func clientHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
