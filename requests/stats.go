package requests

type LeaderboardQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=25"`
}

type RecentQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=10"`
}
