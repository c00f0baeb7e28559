package handlers

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	msgMalformedForm      = "Form not submitted correctly."
	msgInvalidCredentials = "Email/Password combination is incorrect"
	msgTaskNotFound       = "task not found"

	defaultRedirect = "/tasks"
	maxFormBytes    = 1 << 20
)

type loginForm struct {
	Email      string `form:"email" json:"email" validate:"required,email,max=254"`
	Password   string `form:"password" json:"password" validate:"required,notblank,min=8,max=72,pwbytes"`
	RedirectTo string `form:"redirectTo" json:"redirectTo"`
}

type signupForm struct {
	Name       string `form:"name" json:"name" validate:"max=100"`
	Email      string `form:"email" json:"email" validate:"required,email,max=254"`
	Password   string `form:"password" json:"password" validate:"required,notblank,min=8,max=72,pwbytes"`
	RedirectTo string `form:"redirectTo" json:"redirectTo"`
}

type createTaskForm struct {
	Description string `form:"description" json:"description" validate:"required,max=500"`
	Category    string `form:"category" json:"category" validate:"required,category"`
	Deadline    string `form:"deadline" json:"deadline" validate:"required,deadline"`
}

type updateTaskForm struct {
	TaskID      string `form:"task_id" json:"task_id" validate:"required"`
	Description string `form:"description" json:"description" validate:"required,max=500"`
	Category    string `form:"category" json:"category" validate:"required,category"`
	Deadline    string `form:"deadline" json:"deadline" validate:"required,deadline"`
}

type deleteTaskForm struct {
	TaskID string `form:"task_id" json:"task_id" validate:"required"`
}

// bindForm decodes a JSON or url-encoded body into dst.
// net/http ignores DELETE bodies when parsing forms, so those are decoded here.
func bindForm(c *gin.Context, dst any) error {
	if c.Request.Method == http.MethodDelete && c.ContentType() == binding.MIMEPOSTForm {
		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxFormBytes))
		if err != nil {
			return err
		}
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return err
		}
		for k, v := range c.Request.URL.Query() {
			if _, ok := values[k]; !ok {
				values[k] = v
			}
		}
		return binding.MapFormWithTag(dst, values, "form")
	}
	return c.ShouldBind(dst)
}

// methodOverride lets HTML forms reach PATCH and DELETE through POST.
// JSON clients use the real verbs, so only form bodies are consulted.
func methodOverride(c *gin.Context) string {
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
	default:
		return ""
	}
	m := c.PostForm("_method")
	if m == "" {
		m = c.Query("_method")
	}
	return strings.ToUpper(strings.TrimSpace(m))
}

// safeRedirect only follows local absolute paths. Browsers drop tabs and newlines
// and read a backslash as '/', which would turn "/\t/host" into "//host".
func safeRedirect(to string) string {
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") || strings.ContainsFunc(to, unsafeInRedirect) {
		return defaultRedirect
	}
	u, err := url.Parse(to)
	if err != nil || u.Scheme != "" || u.Host != "" ||
		strings.HasPrefix(u.Path, "//") || strings.ContainsFunc(u.Path, unsafeInRedirect) {
		return defaultRedirect
	}
	return to
}

func unsafeInRedirect(r rune) bool {
	return r == '\\' || unicode.IsControl(r)
}

func malformed() result {
	return badRequest(actionData{FormError: msgMalformedForm})
}
