package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name  string
		value any
		want  uint
	}{
		{"uint", uint(7), 7},
		{"int", int(7), 7},
		{"int64", int64(7), 7},
		{"float64 from json claims", float64(7), 7},
		{"unset", nil, 0},
		{"wrong type", "7", 0},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		if tc.value != nil {
			c.Set("userId", tc.value)
		}
		if got := CurrentUserID(c); got != tc.want {
			t.Errorf("%s: CurrentUserID = %d, want %d", tc.name, got, tc.want)
		}
	}
}
