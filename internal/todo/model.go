package todo

type Todo struct {
	ID       int64  `json:"id"`
	Contents string `json:"contents"`
	IsDone   bool   `json:"is_done"`
}

// ListResponse คือ envelope ของ GET /todos
type ListResponse struct {
	Todos []Todo `json:"todos"`
}
