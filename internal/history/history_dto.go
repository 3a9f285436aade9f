package history

import "time"

type HistoryResponse struct {
	ID          string  `json:"id"`
	LeaveID     string  `json:"leave_id"`
	UserID      string  `json:"user_id"`
	Action      string  `json:"action"`
	Description string  `json:"description"`
	PerformedBy string  `json:"performed_by"`
	OldStatus   *string `json:"old_status,omitempty"`
	NewStatus   string  `json:"new_status"`
	CreatedAt   string  `json:"created_at"`
}

func mapToResponse(e HistoryEntry) HistoryResponse {
	return HistoryResponse{
		ID:          e.ID.String(),
		LeaveID:     e.LeaveID.String(),
		UserID:      e.UserID.String(),
		Action:      e.Action,
		Description: e.Description,
		PerformedBy: e.PerformedBy.String(),
		OldStatus:   e.OldStatus,
		NewStatus:   e.NewStatus,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(entries []HistoryEntry) []HistoryResponse {
	resp := make([]HistoryResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToResponse(e)
	}
	return resp
}
