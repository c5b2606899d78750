package respond

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSON_WritesBody(t *testing.T) {
	rr := httptest.NewRecorder()
	if err := JSON(rr, http.StatusCreated, map[string]string{"a": "b"}, nil); err != nil {
		t.Fatalf("JSON error: %v", err)
	}
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type = %q", ct)
	}
	if got := rr.Body.String(); got != `{"a":"b"}` {
		t.Fatalf("body = %q", got)
	}
}

func TestJSON_EncodeErrorWritesNothing(t *testing.T) {
	rr := httptest.NewRecorder()
	boom := errors.New("boom")
	err := JSON(rr, http.StatusOK, 1, func(any) ([]byte, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if rr.Body.Len() != 0 || len(rr.Header()) != 0 {
		t.Fatalf("recorder touched on encode failure: %q %v", rr.Body.String(), rr.Header())
	}
}

func TestText(t *testing.T) {
	rr := httptest.NewRecorder()
	Text(rr, http.StatusInternalServerError, "nope")
	if rr.Code != http.StatusInternalServerError || rr.Body.String() != "nope" {
		t.Fatalf("got %d %q", rr.Code, rr.Body.String())
	}
}
