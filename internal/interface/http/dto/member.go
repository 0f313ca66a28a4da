package dto

// AddMemberRequest HTTP层办理会员请求
// 日期格式与借出请求相同（YYYY-MM-DD或RFC3339）
type AddMemberRequest struct {
	MemberNumber        string `json:"memberNumber"`
	FirstName           string `json:"firstName" example:"Ada"`
	LastName            string `json:"lastName" example:"Lovelace"`
	Email               string `json:"email" example:"ada@example.com"`
	Phone               string `json:"phone" example:"5550001111"`
	Address             string `json:"address"`
	City                string `json:"city"`
	MembershipType      string `json:"membershipType" example:"Standard"`
	MembershipStartDate string `json:"membershipStartDate"`
	MembershipEndDate   string `json:"membershipEndDate"`
	MaxBooksAllowed     int    `json:"maxBooksAllowed" binding:"min=0"`
}

// ChangeStatusRequest 变更会员状态
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required" example:"Suspended"`
}
