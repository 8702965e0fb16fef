package prompt

// PromptRequest is the payload for creating or updating a prompt. FieldTypes
// maps placeholder names to one of text, number, checkbox or date.
type PromptRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Template    string            `json:"template" binding:"required"`
	FieldTypes  map[string]string `json:"field_types"`
}

// ExecuteRequest carries the submitted field values for the fill flow, and
// optionally overrides the configured completion model.
type ExecuteRequest struct {
	Values map[string]string `json:"values"`
	Model  string            `json:"model"`
}

// ExecuteResponse returns the filled template together with the generated
// result and the recorded interaction id.
type ExecuteResponse struct {
	InteractionID  uint              `json:"interaction_id"`
	FilledTemplate string            `json:"filled_template"`
	Result         string            `json:"result"`
	Values         map[string]string `json:"values"`
}

// ValidationFailure echoes the submitted values alongside the ordered error
// list so the caller can re-present the form.
type ValidationFailure struct {
	Errors []string          `json:"errors"`
	Values map[string]string `json:"values"`
}

// RateRequest is the payload for rating a prompt. Rating is a raw string: a
// blank value is a no-op, numeric values are clamped to [1,5]. When
// InteractionID is absent the user's latest interaction on the prompt is
// rated.
type RateRequest struct {
	Rating        string `json:"rating"`
	InteractionID *uint  `json:"interaction_id"`
}

// FieldsResponse lists a template's placeholder names in template order.
type FieldsResponse struct {
	Fields []string `json:"fields"`
}
