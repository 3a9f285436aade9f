package user

type UserResponse struct {
	ID              string `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	IsActive        bool   `json:"is_active"`
	AnnualAllotment int    `json:"annual_allotment"`
	SickAllotment   int    `json:"sick_allotment"`
	CasualAllotment int    `json:"casual_allotment"`
	CreatedAt       string `json:"created_at"`
}

type ToggleStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
