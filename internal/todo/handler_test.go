package todo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Nasaee/todo-crud-api/pkg/utils"
	"github.com/go-chi/chi/v5"
)

func newTestServer(t *testing.T, repo TodoRepository) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Mount("/todos", NewHandler(NewService(repo)).Routes())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s %s: status %d, want %d", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, want)
	}
}

func TestTodoLifecycle(t *testing.T) {
	srv := newTestServer(t, NewMemoryRepository())

	resp := doRequest(t, srv, http.MethodPost, "/todos", `{"id":1,"contents":"buy milk","is_done":false}`)
	expectStatus(t, resp, http.StatusCreated)
	if got := decodeBody[Todo](t, resp); got != (Todo{ID: 1, Contents: "buy milk"}) {
		t.Errorf("create: got %+v", got)
	}

	resp = doRequest(t, srv, http.MethodGet, "/todos/1", "")
	expectStatus(t, resp, http.StatusOK)
	if got := decodeBody[Todo](t, resp); got != (Todo{ID: 1, Contents: "buy milk"}) {
		t.Errorf("get: got %+v", got)
	}

	resp = doRequest(t, srv, http.MethodPatch, "/todos/1", `{"is_done":true}`)
	expectStatus(t, resp, http.StatusOK)
	if got := decodeBody[Todo](t, resp); !got.IsDone || got.Contents != "buy milk" {
		t.Errorf("patch: got %+v", got)
	}

	resp = doRequest(t, srv, http.MethodGet, "/todos/1", "")
	expectStatus(t, resp, http.StatusOK)
	if got := decodeBody[Todo](t, resp); !got.IsDone {
		t.Errorf("get after patch: got %+v, want is_done true", got)
	}

	resp = doRequest(t, srv, http.MethodDelete, "/todos/1", "")
	expectStatus(t, resp, http.StatusNoContent)

	resp = doRequest(t, srv, http.MethodGet, "/todos/1", "")
	expectStatus(t, resp, http.StatusNotFound)
	if got := decodeBody[map[string]string](t, resp); got["error"] != "todo not found" {
		t.Errorf("get after delete: body %v", got)
	}
}

func TestListTodos(t *testing.T) {
	srv := newTestServer(t, NewMemoryRepository())

	resp := doRequest(t, srv, http.MethodGet, "/todos", "")
	expectStatus(t, resp, http.StatusOK)
	body := decodeBody[map[string]json.RawMessage](t, resp)
	if string(body["todos"]) != "[]" {
		t.Errorf("empty list: todos = %s, want []", body["todos"])
	}

	for _, payload := range []string{
		`{"id":2,"contents":"b","is_done":false}`,
		`{"id":1,"contents":"a","is_done":true}`,
		`{"id":3,"contents":"c","is_done":false}`,
	} {
		expectStatus(t, doRequest(t, srv, http.MethodPost, "/todos", payload), http.StatusCreated)
	}

	tests := []struct {
		query string
		want  []int64
	}{
		{"", []int64{1, 2, 3}},
		{"?order=ASC", []int64{1, 2, 3}},
		{"?order=DESC", []int64{3, 2, 1}},
		{"?order=desc", []int64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := doRequest(t, srv, http.MethodGet, "/todos"+tt.query, "")
			expectStatus(t, resp, http.StatusOK)
			got := decodeBody[ListResponse](t, resp)
			if !equalIDs(ids(got.Todos), tt.want) {
				t.Errorf("GET /todos%s: ids %v, want %v", tt.query, ids(got.Todos), tt.want)
			}
		})
	}
}

func TestCreateTodoOverwritesDuplicateID(t *testing.T) {
	srv := newTestServer(t, NewMemoryRepository())

	expectStatus(t, doRequest(t, srv, http.MethodPost, "/todos", `{"id":1,"contents":"old","is_done":true}`), http.StatusCreated)
	expectStatus(t, doRequest(t, srv, http.MethodPost, "/todos", `{"id":1,"contents":"new","is_done":false}`), http.StatusCreated)

	resp := doRequest(t, srv, http.MethodGet, "/todos/1", "")
	expectStatus(t, resp, http.StatusOK)
	if got := decodeBody[Todo](t, resp); got != (Todo{ID: 1, Contents: "new"}) {
		t.Errorf("get: got %+v, want overwritten record", got)
	}
}

func TestCreateTodoValidation(t *testing.T) {
	srv := newTestServer(t, NewMemoryRepository())

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"empty body", "", ""},
		{"not json", `{"id":`, ""},
		{"id wrong type", `{"id":"1","contents":"a","is_done":false}`, "id"},
		{"is_done wrong type", `{"id":1,"contents":"a","is_done":"yes"}`, "is_done"},
		{"missing id", `{"contents":"a","is_done":false}`, "id"},
		{"missing contents", `{"id":1,"is_done":false}`, "contents"},
		{"missing is_done", `{"id":1,"contents":"a"}`, "is_done"},
		{"non positive id", `{"id":0,"contents":"a","is_done":false}`, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, srv, http.MethodPost, "/todos", tt.body)
			expectStatus(t, resp, http.StatusUnprocessableEntity)

			body := decodeBody[utils.ErrorResponse](t, resp)
			if body.Error == "" {
				t.Error("expected error message")
			}
			if tt.wantField != "" {
				if _, ok := body.Fields[tt.wantField]; !ok {
					t.Errorf("fields: got %v, want key %q", body.Fields, tt.wantField)
				}
			}
		})
	}

	resp := doRequest(t, srv, http.MethodGet, "/todos", "")
	if got := decodeBody[ListResponse](t, resp); len(got.Todos) != 0 {
		t.Errorf("rejected creates must not store anything, got %+v", got.Todos)
	}
}

func TestCreateTodoAcceptsFalseAndEmptyValues(t *testing.T) {
	srv := newTestServer(t, NewMemoryRepository())

	resp := doRequest(t, srv, http.MethodPost, "/todos", `{"id":9,"contents":"","is_done":false}`)
	expectStatus(t, resp, http.StatusCreated)
	if got := decodeBody[Todo](t, resp); got != (Todo{ID: 9}) {
		t.Errorf("create: got %+v", got)
	}
}

func TestInvalidPathID(t *testing.T) {
	srv := newTestServer(t, NewMemoryRepository())

	for _, path := range []string{"/todos/abc", "/todos/0", "/todos/-3", "/todos/1.5"} {
		for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
			t.Run(method+" "+path, func(t *testing.T) {
				body := ""
				if method == http.MethodPatch {
					body = `{"is_done":true}`
				}
				expectStatus(t, doRequest(t, srv, method, path, body), http.StatusUnprocessableEntity)
			})
		}
	}
}

func TestUpdateTodoErrors(t *testing.T) {
	srv := newTestServer(t, NewMemoryRepository())
	expectStatus(t, doRequest(t, srv, http.MethodPost, "/todos", `{"id":1,"contents":"a","is_done":false}`), http.StatusCreated)

	t.Run("missing todo is 400", func(t *testing.T) {
		resp := doRequest(t, srv, http.MethodPatch, "/todos/2", `{"is_done":true}`)
		expectStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("missing is_done is 422", func(t *testing.T) {
		resp := doRequest(t, srv, http.MethodPatch, "/todos/1", `{}`)
		expectStatus(t, resp, http.StatusUnprocessableEntity)
	})

	t.Run("contents are ignored", func(t *testing.T) {
		resp := doRequest(t, srv, http.MethodPatch, "/todos/1", `{"is_done":true,"contents":"changed"}`)
		expectStatus(t, resp, http.StatusOK)
		if got := decodeBody[Todo](t, resp); got != (Todo{ID: 1, Contents: "a", IsDone: true}) {
			t.Errorf("patch: got %+v", got)
		}
	})
}

func TestDeleteMissingTodo(t *testing.T) {
	srv := newTestServer(t, NewMemoryRepository())

	resp := doRequest(t, srv, http.MethodDelete, "/todos/5", "")
	expectStatus(t, resp, http.StatusNotFound)
}

// failingRepo จำลอง store ที่ต่อไม่ได้
type failingRepo struct{}

var errStoreDown = errors.New("store down")

func (failingRepo) List(context.Context, Order) ([]Todo, error)         { return nil, errStoreDown }
func (failingRepo) GetByID(context.Context, int64) (*Todo, error)       { return nil, errStoreDown }
func (failingRepo) Upsert(context.Context, *Todo) error                 { return errStoreDown }
func (failingRepo) SetDone(context.Context, int64, bool) (*Todo, error) { return nil, errStoreDown }
func (failingRepo) Delete(context.Context, int64) error                 { return errStoreDown }
func (failingRepo) Ping(context.Context) error                          { return errStoreDown }

func TestStoreFailureIs500(t *testing.T) {
	srv := newTestServer(t, failingRepo{})

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/todos", ""},
		{http.MethodGet, "/todos/1", ""},
		{http.MethodPost, "/todos", `{"id":1,"contents":"a","is_done":false}`},
		{http.MethodPatch, "/todos/1", `{"is_done":true}`},
		{http.MethodDelete, "/todos/1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp := doRequest(t, srv, tt.method, tt.path, tt.body)
			expectStatus(t, resp, http.StatusInternalServerError)
			if got := decodeBody[map[string]string](t, resp); strings.Contains(got["error"], "store down") {
				t.Errorf("internal error leaked to client: %q", got["error"])
			}
		})
	}
}
