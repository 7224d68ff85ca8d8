package wda

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// response is the envelope of every WebDriverAgent reply. Legacy JSONWP
// agents answer 200 and report failures through a non-zero status.
type response struct {
	Status *int            `json:"status"`
	Value  json.RawMessage `json:"value"`
}

// JSONWP status codes and the W3C error codes they correspond to.
var legacyCodes = map[int]string{
	6:  "invalid session id",
	7:  "no such element",
	10: "stale element reference",
	13: "unknown error",
	32: "invalid selector",
}

// wdaError is the value of a failed reply.
type wdaError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Error reports a request WebDriverAgent rejected.
type Error struct {
	Method string
	Path   string
	Status int
	Code   string
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("wda %s %s: %d %s: %s", e.Method, e.Path, e.Status, e.Code, e.Msg)
}

// gone reports whether err says the element no longer exists, which happens
// when the screen changes between finding an element and reading it.
func gone(err error) bool {
	var werr *Error
	if !errors.As(err, &werr) {
		return false
	}
	return werr.Code == "stale element reference" || werr.Code == "no such element"
}

func (d *Driver) call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("wda %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env response
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && err != io.EOF {
		return fmt.Errorf("wda %s %s: failed to decode reply: %w", method, path, err)
	}

	if resp.StatusCode >= 300 {
		var werr wdaError
		_ = json.Unmarshal(env.Value, &werr)
		return &Error{Method: method, Path: path, Status: resp.StatusCode, Code: werr.Error, Msg: werr.Message}
	}
	if env.Status != nil && *env.Status != 0 {
		var werr wdaError
		if json.Unmarshal(env.Value, &werr) != nil {
			_ = json.Unmarshal(env.Value, &werr.Message)
		}
		code, ok := legacyCodes[*env.Status]
		if !ok {
			code = fmt.Sprintf("status %d", *env.Status)
		}
		return &Error{Method: method, Path: path, Status: resp.StatusCode, Code: code, Msg: werr.Message}
	}

	if out == nil || len(env.Value) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Value, out); err != nil {
		return fmt.Errorf("wda %s %s: unexpected reply: %w", method, path, err)
	}
	return nil
}
