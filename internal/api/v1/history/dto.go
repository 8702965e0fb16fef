package history

// InlineRateRequest is the payload of the inline history rating flow. Unlike
// the prompt rating endpoint, a blank or malformed rating is an error here.
type InlineRateRequest struct {
	Rating string `json:"rating"`
}

// InlineRateResponse follows the ok/error contract of the inline flow.
type InlineRateResponse struct {
	OK            bool     `json:"ok"`
	InteractionID uint     `json:"interaction_id"`
	Rating        int      `json:"rating"`
	PromptAvg     *float64 `json:"prompt_avg"`
	PromptCount   int      `json:"prompt_count"`
}

// InlineRateError is the error shape of the inline flow.
type InlineRateError struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// BulkDeleteRequest names the interactions to delete. Identifiers that do
// not exist or belong to another user are silently ignored.
type BulkDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// BulkDeleteResponse reports how many interactions were actually deleted.
type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}
