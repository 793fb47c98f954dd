package handler

// createTaskRequest is the payload for a new task. Status defaults to
// "pending" when omitted.
type createTaskRequest struct {
	Title       string   `json:"title"       validate:"required,min=1,max=250"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Status      string   `json:"status"      validate:"omitempty,oneof=pending in-progress done"`
	Categories  []string `json:"categories"  validate:"omitempty,max=10,dive,required,max=100"`
}
