package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmate/internal/validation"
)

const errInternal = "internal error"

// result is what every route handler returns. Exactly one of body, location or err drives the response.
type result struct {
	status   int
	body     any
	location string
	cookies  []*http.Cookie

	err    error
	logKey string
	kv     []any
}

// actionData is the 400 payload of a rejected form submission.
type actionData struct {
	FormError   string                 `json:"formError,omitempty"`
	FieldErrors validation.FieldErrors `json:"fieldErrors,omitempty"`
	Fields      map[string]string      `json:"fields,omitempty"`
}

func ok(status int, body any) result {
	return result{status: status, body: body}
}

func redirect(location string, cookies ...*http.Cookie) result {
	return result{status: http.StatusFound, location: location, cookies: cookies}
}

func badRequest(data actionData) result {
	return result{status: http.StatusBadRequest, body: data}
}

func notFound(msg string) result {
	return result{status: http.StatusNotFound, body: gin.H{"error": msg}}
}

func failure(logKey string, err error, kv ...any) result {
	return result{status: http.StatusInternalServerError, err: err, logKey: logKey, kv: kv}
}

// handle adapts a result-returning function to gin.
func (h *Handler) handle(fn func(c *gin.Context) result) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.render(c, fn(c))
	}
}

func (h *Handler) render(c *gin.Context, res result) {
	for _, ck := range res.cookies {
		http.SetCookie(c.Writer, ck)
	}
	switch {
	case res.err != nil:
		h.logAndJSONError(c, res.status, errInternal, res.logKey, res.err, res.kv...)
	case res.location != "":
		c.Redirect(res.status, res.location)
	case res.body == nil:
		c.Status(res.status)
	default:
		c.JSON(res.status, res.body)
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}
