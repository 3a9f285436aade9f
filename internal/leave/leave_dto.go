package leave

import "time"

type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Duration  int    `json:"duration" binding:"required,min=1"`
	Reason    string `json:"reason" binding:"required"`
}

type DecideLeaveRequest struct {
	Decision string  `json:"decision" binding:"required"`
	Comments *string `json:"comments"`
}

type LeaveResponse struct {
	ID            string `json:"id"`
	RequestNumber string `json:"request_number,omitempty"`

	UserID       string  `json:"user_id"`
	UserName     string  `json:"user_name,omitempty"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Duration     int     `json:"duration"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	AppliedAt    string  `json:"applied_at"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApproverName *string `json:"approver_name,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
	Comments     *string `json:"comments,omitempty"`
}

type BalanceResponse struct {
	UserID    string `json:"user_id"`
	LeaveType string `json:"leave_type"`
	Days      int    `json:"days"`
	Year      int    `json:"year,omitempty"`
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID.String(),
		RequestNumber: l.RequestNumber,

		UserID:    l.UserID.String(),
		LeaveType: l.LeaveType.String(),
		StartDate: l.StartDate.Format("2006-01-02"),
		EndDate:   l.EndDate.Format("2006-01-02"),
		Duration:  l.Duration,
		Reason:    l.Reason,
		Status:    l.Status,
		AppliedAt: l.CreatedAt.Format(time.RFC3339),
	}
	if l.User != nil {
		resp.UserName = l.User.FullName()
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.Approver != nil {
		v := l.Approver.FullName()
		resp.ApproverName = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.Comments = l.Comments
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
