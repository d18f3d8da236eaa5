package dto

type CreateIssueInput struct {
	Title       string `form:"title" binding:"required,min=5,max=200"`
	Description string `form:"description" binding:"required,min=10"`
	Category    string `form:"category" binding:"required"`
	Priority    string `form:"priority" binding:"omitempty"`
}

type UpdateIssueStatusInput struct {
	Status     string `json:"status" binding:"required"`
	AssignedTo string `json:"assigned_to" binding:"omitempty,uuid"`
}

type IssueListQuery struct {
	PageQuery
	Status   string `form:"status"`
	Category string `form:"category"`
	Priority string `form:"priority"`
	Search   string `form:"search"`
}

type IssueStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByCategory map[string]int64 `json:"by_category"`
	ByPriority map[string]int64 `json:"by_priority"`
}
