package response_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/installment-console/internal/repository"
	"github.com/maxviazov/installment-console/internal/service"
	"github.com/maxviazov/installment-console/pkg/response"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	_, invalid := service.EntryForm{Amount: "x"}.Entry()

	cases := []struct {
		name     string
		in       error
		wantCode int
		wantErr  string
		wantMsg  string
	}{
		{"invalid_input", invalid, 400, "invalid_input", "one or more fields are invalid"},
		{"not_found", fmt.Errorf("get: %w", &repository.APIError{Status: 404}), 404, "not_found", ""},
		{"rejected", &repository.APIError{Status: 400, Message: "الرجاء إدخال مبلغ صحيح"}, 422, "rejected", "الرجاء إدخال مبلغ صحيح"},
		{"backend_error", &repository.APIError{Status: 500, Message: "boom"}, 502, "backend_error", "boom"},
		{"bad_response", fmt.Errorf("x: %w", repository.ErrBadResponse), 502, "bad_backend_response", ""},
		{"unavailable", fmt.Errorf("x: %w", repository.ErrUnavailable), 503, "backend_unavailable", ""},
		{"timeout", fmt.Errorf("x: %w", context.DeadlineExceeded), 504, "timeout", ""},
		{"internal", errors.New("boom"), 500, "internal_error", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			if code != tc.wantCode || payload.Error != tc.wantErr {
				t.Fatalf("unexpected mapping: got (%d,%s) want (%d,%s)", code, payload.Error, tc.wantCode, tc.wantErr)
			}
			assert.Equal(t, tc.wantMsg, payload.Message)
			if tc.wantErr == "invalid_input" && len(payload.FieldErrors) == 0 {
				t.Fatalf("expected field errors in payload")
			}
		})
	}
}

func TestWriteNotice(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	response.WriteNotice(c, service.Notice{Severity: service.SeverityError, Message: "no"}, &repository.APIError{Status: 400})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"severity":"error","message":"no"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	response.WriteNotice(c, service.Notice{Severity: service.SeveritySuccess, Message: "ok"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
