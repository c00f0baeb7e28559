package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmate/internal/metrics"
	"taskmate/internal/models"
	"taskmate/internal/service"
	"taskmate/internal/session"
	"taskmate/internal/validation"
)

// board godoc
// @Summary      Task board of the logged in user
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  models.Board
// @Success      302  "not logged in, redirect to /login?redirectTo=/tasks"
// @Failure      500  {object}  map[string]string
// @Router       /tasks [get]
func (h *Handler) board(c *gin.Context) result {
	id := userID(c)
	b, err := h.services.Board(c.Request.Context(), id)
	if errors.Is(err, service.ErrUserNotFound) {
		// valid session for a deleted account
		h.logInfo("tasks_board_stale_session", "user_id", id)
		return redirect(session.LoginURL(c.Request.URL.Path), h.gate.End())
	}
	if err != nil {
		return failure("tasks_board_failed", err, "user_id", id)
	}
	return ok(http.StatusOK, b)
}

// postTasks godoc
// @Summary      Create a task
// @Description  HTML forms may send _method=patch or _method=delete to update or delete instead.
// @Tags         tasks
// @Accept       x-www-form-urlencoded,json
// @Produce      json
// @Param        description  formData  string  true   "description"
// @Param        category     formData  string  true   "ToDo, InProgress, Done or Backlog"
// @Param        deadline     formData  string  true   "RFC3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD"
// @Param        _method      formData  string  false  "patch or delete"
// @Success      201  {object}  map[string]interface{}  "task"
// @Failure      400  {object}  actionData
// @Failure      401  {object}  map[string]string
// @Router       /tasks [post]
func (h *Handler) postTasks(c *gin.Context) result {
	switch methodOverride(c) {
	case "", http.MethodPost:
		return h.createTask(c)
	case http.MethodPatch, http.MethodPut:
		return h.updateTask(c)
	case http.MethodDelete:
		return h.deleteTask(c)
	default:
		return malformed()
	}
}

func (h *Handler) createTask(c *gin.Context) result {
	var input createTaskForm
	if err := bindForm(c, &input); err != nil {
		h.logInfo("tasks_create_bad_request", "err", err)
		return malformed()
	}
	in, bad := taskInput(input.Description, input.Category, input.Deadline, input, nil)
	if bad != nil {
		return *bad
	}

	id := userID(c)
	task, err := h.services.Create(c.Request.Context(), id, in)
	if err != nil {
		return failure("tasks_create_failed", err, "user_id", id)
	}
	metrics.ObserveTaskMutation("create")
	return ok(http.StatusCreated, gin.H{"task": task})
}

// updateTask godoc
// @Summary      Update a task
// @Tags         tasks
// @Accept       x-www-form-urlencoded,json
// @Produce      json
// @Param        task_id      formData  string  true  "task id"
// @Param        description  formData  string  true  "description"
// @Param        category     formData  string  true  "category"
// @Param        deadline     formData  string  true  "deadline"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  actionData
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks [patch]
func (h *Handler) updateTask(c *gin.Context) result {
	var input updateTaskForm
	if err := bindForm(c, &input); err != nil {
		h.logInfo("tasks_update_bad_request", "err", err)
		return malformed()
	}
	in, bad := taskInput(input.Description, input.Category, input.Deadline, input,
		map[string]string{"task_id": input.TaskID})
	if bad != nil {
		return *bad
	}

	id := userID(c)
	err := h.services.Update(c.Request.Context(), id, input.TaskID, in)
	if errors.Is(err, service.ErrTaskNotFound) {
		h.logInfo("tasks_update_not_found", "user_id", id, "task_id", input.TaskID)
		return notFound(msgTaskNotFound)
	}
	if err != nil {
		return failure("tasks_update_failed", err, "user_id", id, "task_id", input.TaskID)
	}
	metrics.ObserveTaskMutation("update")
	return ok(http.StatusOK, gin.H{})
}

// deleteTask godoc
// @Summary      Delete a task
// @Tags         tasks
// @Accept       x-www-form-urlencoded,json
// @Produce      json
// @Param        task_id  query  string  true  "task id"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  actionData
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks [delete]
func (h *Handler) deleteTask(c *gin.Context) result {
	var input deleteTaskForm
	if err := bindForm(c, &input); err != nil {
		h.logInfo("tasks_delete_bad_request", "err", err)
		return malformed()
	}
	if errs := validation.Struct(input); errs != nil {
		return badRequest(actionData{FieldErrors: errs, Fields: map[string]string{"task_id": input.TaskID}})
	}

	id := userID(c)
	err := h.services.Delete(c.Request.Context(), id, input.TaskID)
	if errors.Is(err, service.ErrTaskNotFound) {
		h.logInfo("tasks_delete_not_found", "user_id", id, "task_id", input.TaskID)
		return notFound(msgTaskNotFound)
	}
	if err != nil {
		return failure("tasks_delete_failed", err, "user_id", id, "task_id", input.TaskID)
	}
	metrics.ObserveTaskMutation("delete")
	return ok(http.StatusOK, gin.H{})
}

// taskInput validates form and converts the raw task fields. extra is echoed back with the fields on failure.
func taskInput(description, category, deadline string, form any, extra map[string]string) (service.TaskInput, *result) {
	if errs := validation.Struct(form); errs != nil {
		fields := map[string]string{"description": description, "category": category, "deadline": deadline}
		for k, v := range extra {
			fields[k] = v
		}
		bad := badRequest(actionData{FieldErrors: errs, Fields: fields})
		return service.TaskInput{}, &bad
	}

	// both already passed validation
	cat, _ := models.ParseCategory(category)
	due, _ := models.ParseDeadline(deadline)
	return service.TaskInput{Description: description, Category: cat, Deadline: due}, nil
}
