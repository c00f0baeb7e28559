package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmate/internal/metrics"
	"taskmate/internal/service"
	"taskmate/internal/validation"
)

// loginPage godoc
// @Summary      Login form data
// @Tags         auth
// @Produce      json
// @Param        redirectTo  query  string  false  "local path to return to"
// @Success      200  {object}  map[string]string
// @Success      302  "already logged in"
// @Router       /login [get]
func (h *Handler) loginPage(c *gin.Context) result {
	to := safeRedirect(c.Query("redirectTo"))
	if _, loggedIn := h.gate.CurrentUserID(c.Request); loggedIn {
		return redirect(to)
	}
	return ok(http.StatusOK, gin.H{"redirectTo": to})
}

// signupPage godoc
// @Summary      Signup form data
// @Tags         auth
// @Produce      json
// @Param        redirectTo  query  string  false  "local path to return to"
// @Success      200  {object}  map[string]string
// @Router       /signup [get]
func (h *Handler) signupPage(c *gin.Context) result {
	return ok(http.StatusOK, gin.H{"redirectTo": safeRedirect(c.Query("redirectTo"))})
}

// login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       x-www-form-urlencoded,json
// @Produce      json
// @Param        email       formData  string  true   "email"
// @Param        password    formData  string  true   "password"
// @Param        redirectTo  formData  string  false  "local path to return to"
// @Success      302  "session cookie set"
// @Failure      400  {object}  actionData
// @Failure      500  {object}  map[string]string
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) result {
	var input loginForm
	if err := bindForm(c, &input); err != nil {
		h.logInfo("auth_login_bad_request", "err", err)
		metrics.ObserveAuth(metrics.EventLogin, metrics.OutcomeInvalid)
		return malformed()
	}

	fields := map[string]string{"email": input.Email, "redirectTo": input.RedirectTo}
	if errs := validation.Struct(input); errs != nil {
		metrics.ObserveAuth(metrics.EventLogin, metrics.OutcomeInvalid)
		return badRequest(actionData{FieldErrors: errs, Fields: fields})
	}

	u, err := h.services.Login(c.Request.Context(), service.LoginInput{Email: input.Email, Password: input.Password})
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.logInfo("auth_login_failed", "email", service.NormalizeEmail(input.Email))
		metrics.ObserveAuth(metrics.EventLogin, metrics.OutcomeRejected)
		return badRequest(actionData{FormError: msgInvalidCredentials, Fields: fields})
	}
	if err != nil {
		metrics.ObserveAuth(metrics.EventLogin, metrics.OutcomeServerError)
		return failure("auth_login_error", err)
	}

	metrics.ObserveAuth(metrics.EventLogin, metrics.OutcomeSuccess)
	return h.startSession(u.ID, input.RedirectTo)
}

// signup godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       x-www-form-urlencoded,json
// @Produce      json
// @Param        name        formData  string  false  "display name"
// @Param        email       formData  string  true   "email"
// @Param        password    formData  string  true   "password, 8 to 72 characters"
// @Param        redirectTo  formData  string  false  "local path to return to"
// @Success      302  "session cookie set"
// @Failure      400  {object}  actionData
// @Failure      500  {object}  map[string]string
// @Router       /signup [post]
func (h *Handler) signup(c *gin.Context) result {
	var input signupForm
	if err := bindForm(c, &input); err != nil {
		h.logInfo("auth_sign_up_bad_request", "err", err)
		metrics.ObserveAuth(metrics.EventSignup, metrics.OutcomeInvalid)
		return malformed()
	}

	fields := map[string]string{"name": input.Name, "email": input.Email, "redirectTo": input.RedirectTo}
	if errs := validation.Struct(input); errs != nil {
		metrics.ObserveAuth(metrics.EventSignup, metrics.OutcomeInvalid)
		return badRequest(actionData{FieldErrors: errs, Fields: fields})
	}

	u, err := h.services.Register(c.Request.Context(), service.RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
	})
	var exists *service.UserExistsError
	if errors.As(err, &exists) {
		h.logInfo("auth_sign_up_failed", "email", exists.Email, "err", err)
		metrics.ObserveAuth(metrics.EventSignup, metrics.OutcomeRejected)
		return badRequest(actionData{FormError: exists.Error(), Fields: fields})
	}
	if err != nil {
		metrics.ObserveAuth(metrics.EventSignup, metrics.OutcomeServerError)
		return failure("auth_sign_up_error", err)
	}

	metrics.ObserveAuth(metrics.EventSignup, metrics.OutcomeSuccess)
	return h.startSession(u.ID, input.RedirectTo)
}

// logout godoc
// @Summary      Log out
// @Tags         auth
// @Success      302  "session cookie cleared"
// @Router       /logout [post]
func (h *Handler) logout(c *gin.Context) result {
	metrics.ObserveAuth(metrics.EventLogout, metrics.OutcomeSuccess)
	return redirect("/login", h.gate.End())
}

func (h *Handler) startSession(userID, redirectTo string) result {
	cookie, err := h.gate.Commit(userID)
	if err != nil {
		return failure("session_commit_failed", err, "user_id", userID)
	}
	return redirect(safeRedirect(redirectTo), cookie)
}

func (h *Handler) logInfo(key string, kv ...any) {
	if h.log != nil {
		h.log.Infow(key, kv...)
	}
}
