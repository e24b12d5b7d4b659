package stats

// TrainerRating is one row of the top-trainers leaderboard.
type TrainerRating struct {
	Trainer       string  `json:"trainer"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	Sessions struct {
		Total     int `json:"total"`
		Active    int `json:"active"`
		Cancelled int `json:"cancelled"`
		Completed int `json:"completed"`
		Virtual   int `json:"virtual"`
	} `json:"sessions"`

	Bookings struct {
		Total    int `json:"total"`
		Pending  int `json:"pending"`
		Approved int `json:"approved"`
		Rejected int `json:"rejected"`
	} `json:"bookings"`

	Orders struct {
		Total        int     `json:"total"`
		Paid         int     `json:"paid"`
		TotalRevenue float64 `json:"totalRevenue"`
	} `json:"orders"`

	Members struct {
		Total  int `json:"total"`
		Active int `json:"active"`
	} `json:"members"`

	TopTrainers []TrainerRating `json:"topTrainers"`

	GeneratedAt string `json:"generatedAt"`
}
