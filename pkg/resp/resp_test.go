package resp

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestServerErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/users/1/stats", nil)

	ServerError(c, errors.New(`pq: relation "reports" does not exist`))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "pq:") || strings.Contains(body, "relation") {
		t.Errorf("body leaks internal detail: %s", body)
	}
	if !strings.Contains(body, "internal server error") {
		t.Errorf("body = %s, want the generic message", body)
	}
}

func TestErrorHelpersEchoMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		fn   func(*gin.Context, string)
		code int
	}{
		{"bad request", BadRequest, http.StatusBadRequest},
		{"not found", NotFound, http.StatusNotFound},
		{"conflict", Conflict, http.StatusConflict},
		{"forbidden", Forbidden, http.StatusForbidden},
		{"unauthorized", Unauthorized, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		tc.fn(c, "what went wrong")

		if w.Code != tc.code {
			t.Errorf("%s: status = %d, want %d", tc.name, w.Code, tc.code)
		}
		if !strings.Contains(w.Body.String(), "what went wrong") {
			t.Errorf("%s: body = %s, want the message echoed", tc.name, w.Body.String())
		}
	}
}
