package todo

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Nasaee/todo-crud-api/pkg/utils"
	"github.com/go-chi/chi/v5"
)

// =============== Handler struct ==================

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Routes คือ router ของ /todos (mount ที่ cmd/api.go)
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListTodos)
	r.Post("/", h.CreateTodo)

	r.Route("/{todo_id}", func(r chi.Router) {
		r.Get("/", h.GetTodoByID)
		r.Patch("/", h.UpdateTodo)
		r.Delete("/", h.DeleteTodo)
	})

	return r
}

// =============== helper =================

// todoIDFromPath อ่าน {todo_id} ต้องเป็นเลขจำนวนเต็มบวก
func todoIDFromPath(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "todo_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeInvalidID(w http.ResponseWriter) {
	utils.WriteJSON(w, http.StatusUnprocessableEntity, utils.ErrorResponse{
		Error:  "invalid todo id",
		Fields: map[string]string{"todo_id": "must be a positive integer"},
	})
}

// =============== handlers =================

// GET /todos?order=ASC|DESC
func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	order := ParseOrder(r.URL.Query().Get("order"))

	todos, err := h.svc.ListTodos(r.Context(), order)
	if err != nil {
		slog.Error("failed to list todos", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to list todos")
		return
	}

	utils.WriteJSON(w, http.StatusOK, ListResponse{Todos: todos})
}

// GET /todos/{todo_id}
func (h *Handler) GetTodoByID(w http.ResponseWriter, r *http.Request) {
	id, ok := todoIDFromPath(r)
	if !ok {
		writeInvalidID(w)
		return
	}

	todo, err := h.svc.GetTodo(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "todo not found")
			return
		}
		slog.Error("failed to get todo", "id", id, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to get todo")
		return
	}

	utils.WriteJSON(w, http.StatusOK, todo)
}

// POST /todos
func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var in CreateTodoInput
	if err := utils.DecodeJSON(r.Body, &in); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	todo, err := h.svc.CreateTodo(r.Context(), in)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("failed to create todo", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to create todo")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, todo)
}

// PATCH /todos/{todo_id}
func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoIDFromPath(r)
	if !ok {
		writeInvalidID(w)
		return
	}

	var in UpdateTodoInput
	if err := utils.DecodeJSON(r.Body, &in); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	todo, err := h.svc.UpdateTodo(r.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			// 400 ตาม contract เดิมของ API (ไม่ใช่ 404)
			utils.WriteError(w, http.StatusBadRequest, "todo not found")
			return
		case errors.Is(err, ErrInvalidInput):
			utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
			return
		default:
			slog.Error("failed to update todo", "id", id, "error", err)
			utils.WriteError(w, http.StatusInternalServerError, "failed to update todo")
			return
		}
	}

	utils.WriteJSON(w, http.StatusOK, todo)
}

// DELETE /todos/{todo_id}
func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoIDFromPath(r)
	if !ok {
		writeInvalidID(w)
		return
	}

	err := h.svc.DeleteTodo(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "todo not found")
			return
		}
		slog.Error("failed to delete todo", "id", id, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to delete todo")
		return
	}

	utils.WriteJSON(w, http.StatusNoContent, nil)
}
