package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// bodyError wraps a request body that is not valid JSON.
type bodyError struct {
	err error
}

func (e *bodyError) Error() string { return "invalid JSON body: " + e.err.Error() }
func (e *bodyError) Unwrap() error { return e.err }

// params holds request parameters from the query string and, when the
// request carries one, a JSON object body. Query values take precedence.
type params struct {
	query url.Values
	body  map[string]json.RawMessage
}

func readParams(r *http.Request) (*params, error) {
	p := &params{query: r.URL.Query()}
	if r.Body == nil || r.ContentLength == 0 {
		return p, nil
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return p, nil
	}

	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&p.body); err != nil && !errors.Is(err, io.EOF) {
		return nil, &bodyError{err: err}
	}
	return p, nil
}

// raw returns the body value for name, treating JSON null as absent.
func (p *params) raw(name string) (json.RawMessage, bool) {
	v, ok := p.body[name]
	if !ok || string(v) == "null" {
		return nil, false
	}
	return v, true
}

// String returns the named string parameter and whether it was supplied.
func (p *params) String(name string) (string, bool, error) {
	if vs, ok := p.query[name]; ok && len(vs) > 0 {
		return vs[0], true, nil
	}
	v, ok := p.raw(name)
	if !ok {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false, fmt.Errorf("%s must be a string", name)
	}
	return s, true, nil
}

// Int returns the named integer parameter and whether it was supplied.
// bitSize bounds the accepted range as in strconv.ParseInt.
func (p *params) Int(name string, bitSize int) (int64, bool, error) {
	if vs, ok := p.query[name]; ok && len(vs) > 0 {
		n, err := strconv.ParseInt(vs[0], 10, bitSize)
		if err != nil {
			return 0, false, fmt.Errorf("%s must be an integer", name)
		}
		return n, true, nil
	}
	v, ok := p.raw(name)
	if !ok {
		return 0, false, nil
	}
	var num json.Number
	if err := json.Unmarshal(v, &num); err != nil {
		return 0, false, fmt.Errorf("%s must be an integer", name)
	}
	n, err := strconv.ParseInt(num.String(), 10, bitSize)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be an integer", name)
	}
	return n, true, nil
}

// RequireString returns a mandatory string parameter. An empty value counts
// as supplied.
func (p *params) RequireString(name string) (string, error) {
	s, ok, err := p.String(name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%s is required", name)
	}
	return s, nil
}

// RequireInt returns a mandatory integer parameter.
func (p *params) RequireInt(name string, bitSize int) (int64, error) {
	n, ok, err := p.Int(name, bitSize)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%s is required", name)
	}
	return n, nil
}

// pathID parses a numeric URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return id, nil
}
