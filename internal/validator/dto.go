package validator

// SubmitTypingTestRequest is the validated submit-sample payload. Pointer
// fields distinguish "missing" from a legitimate zero value.
type SubmitTypingTestRequest struct {
	WPM      *float64 `json:"wpm" validate:"required,gte=0,lte=500"`
	Accuracy *float64 `json:"accuracy" validate:"required,gte=0,lte=100"`
	Mistakes *int     `json:"mistakes" validate:"required,gte=0"`
	Duration *int     `json:"duration" validate:"required,gt=0,lte=3600"`
}

// TodoCreateRequest is the payload for creating a todo
type TodoCreateRequest struct {
	Task      string `json:"task" validate:"required,min=1,max=1000"`
	Completed bool   `json:"completed"`
}

// TodoUpdateRequest is the payload for updating a todo's completion state
type TodoUpdateRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// CalculatorCreateRequest is the payload for saving a calculation
type CalculatorCreateRequest struct {
	Expression string `json:"expression" validate:"required,max=500"`
	Result     string `json:"result" validate:"required,max=100"`
}
