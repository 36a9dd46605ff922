// dto.go
package todo

// ใช้ตอนสร้าง (ทุก field required, id มาจาก client)
// ใช้ pointer เพื่อแยก "ไม่ได้ส่งมา" ออกจาก zero value เช่น is_done=false
type CreateTodoInput struct {
	ID       *int64  `json:"id" validate:"required,gt=0"`
	Contents *string `json:"contents" validate:"required"`
	IsDone   *bool   `json:"is_done" validate:"required"`
}

func (in CreateTodoInput) toTodo() Todo {
	return Todo{
		ID:       *in.ID,
		Contents: *in.Contents,
		IsDone:   *in.IsDone,
	}
}

// ใช้ตอนแก้ไข (แก้ได้แค่ is_done)
type UpdateTodoInput struct {
	IsDone *bool `json:"is_done" validate:"required"`
}
