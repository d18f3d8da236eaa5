package dto

type CreateAnnouncementInput struct {
	Title            string `form:"title" binding:"required,min=5,max=200"`
	Content          string `form:"content" binding:"required,min=10"`
	Category         string `form:"category" binding:"omitempty"`
	Priority         string `form:"priority" binding:"omitempty,oneof=low medium high urgent"`
	TargetAudience   string `form:"target_audience" binding:"required,oneof=all students specific_year specific_department"`
	TargetYear       string `form:"target_year" binding:"omitempty"`
	TargetDepartment string `form:"target_department" binding:"omitempty"`
	IsPinned         bool   `form:"is_pinned"`
	PublishDate      string `form:"publish_date" binding:"omitempty,datetime=2006-01-02"`
	ExpiryDate       string `form:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateAnnouncementInput struct {
	Title            string `form:"title" binding:"omitempty,min=5,max=200"`
	Content          string `form:"content" binding:"omitempty,min=10"`
	Category         string `form:"category" binding:"omitempty"`
	Priority         string `form:"priority" binding:"omitempty,oneof=low medium high urgent"`
	TargetAudience   string `form:"target_audience" binding:"omitempty,oneof=all students specific_year specific_department"`
	TargetYear       string `form:"target_year" binding:"omitempty"`
	TargetDepartment string `form:"target_department" binding:"omitempty"`
	IsActive         *bool  `form:"is_active"`
	ExpiryDate       string `form:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
}

type AnnouncementListQuery struct {
	PageQuery
	Category string `form:"category"`
	Search   string `form:"search"`
}

type AnnouncementStats struct {
	Total      int64            `json:"total"`
	Active     int64            `json:"active"`
	ByCategory map[string]int64 `json:"by_category"`
}
