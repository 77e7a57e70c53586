package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/installment-console/internal/service"
)

const flashCookie = "console_flash"

// flash carries an action's Notice across the redirect that follows a form post.
type flash struct {
	maxAge int
}

func (f flash) set(c *gin.Context, n service.Notice) {
	raw, err := json.Marshal(n)
	if err != nil {
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   f.maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// pop returns the pending notice, if any, and clears it so it shows once.
func (f flash) pop(c *gin.Context) *service.Notice {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil
	}
	http.SetCookie(c.Writer, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var n service.Notice
	if err := json.Unmarshal(raw, &n); err != nil || n.Message == "" {
		return nil
	}
	if n.Severity != service.SeveritySuccess {
		n.Severity = service.SeverityError
	}
	return &n
}
