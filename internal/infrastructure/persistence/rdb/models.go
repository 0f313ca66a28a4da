package rdb

import (
	"time"
)

// 这些是infrastructure层的数据模型，包含GORM tag;
// domain层实体不依赖GORM,Repository负责两者之间的转换

// UserModel 馆员账号
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
	Nickname  string    `gorm:"size:50;not null;comment:昵称"`
	Role      string    `gorm:"size:20;not null;default:librarian;comment:角色(admin/librarian)"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel 馆藏
// ISBN可为空，空值存NULL，唯一索引对多个NULL不冲突
type BookModel struct {
	ID              uint      `gorm:"primaryKey"`
	Title           string    `gorm:"index:idx_books_search;size:200;not null;comment:书名"`
	Author          string    `gorm:"index:idx_books_search;size:100;not null;comment:作者"`
	ISBN            *string   `gorm:"uniqueIndex;size:20;comment:ISBN"`
	Category        string    `gorm:"index;size:30;not null;default:Other;comment:分类"`
	ItemType        string    `gorm:"size:20;not null;default:Book;comment:馆藏类型"`
	TotalCopies     int       `gorm:"not null;default:1;comment:副本总数"`
	AvailableCopies int       `gorm:"not null;default:1;comment:可借副本数"`
	PublishYear     int       `gorm:"comment:出版年份"`
	Publisher       string    `gorm:"size:100;comment:出版社"`
	CreatedAt       time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt       time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// MemberModel 会员
type MemberModel struct {
	ID                  uint      `gorm:"primaryKey"`
	MemberNumber        string    `gorm:"uniqueIndex;size:32;not null;comment:会员号"`
	FirstName           string    `gorm:"size:50;not null;comment:名"`
	LastName            string    `gorm:"size:50;not null;comment:姓"`
	Email               string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Phone               string    `gorm:"size:10;not null;comment:手机号"`
	Address             string    `gorm:"size:200;not null;comment:地址"`
	City                string    `gorm:"size:50;not null;comment:城市"`
	MembershipType      string    `gorm:"size:20;not null;default:Standard;comment:会员等级"`
	MembershipStatus    string    `gorm:"index;size:20;not null;default:Active;comment:会员状态"`
	MembershipStartDate time.Time `gorm:"not null;comment:会员开始日期"`
	MembershipEndDate   time.Time `gorm:"not null;comment:会员结束日期"`
	MaxBooksAllowed     int       `gorm:"not null;default:5;comment:借阅上限"`
	CurrentBooksIssued  int       `gorm:"not null;default:0;comment:当前借阅数"`
	TotalFine           int64     `gorm:"not null;default:0;comment:历史累计罚款"`
	CreatedAt           time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt           time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (MemberModel) TableName() string {
	return "members"
}

// IssueModel 借阅记录
// 复合索引（member_id, status）服务于会员借阅查询，（status, due_date）服务于逾期查询
type IssueModel struct {
	ID          uint       `gorm:"primaryKey"`
	IssueNumber string     `gorm:"uniqueIndex;size:32;not null;comment:借阅编号"`
	BookID      uint       `gorm:"index;not null;comment:图书ID"`
	MemberID    uint       `gorm:"index:idx_issues_member_status;not null;comment:会员ID"`
	IssueDate   time.Time  `gorm:"index;not null;comment:借出日期"`
	DueDate     time.Time  `gorm:"index:idx_issues_status_due,priority:2;not null;comment:应还日期"`
	ReturnDate  *time.Time `gorm:"comment:归还日期"`
	Status      string     `gorm:"index:idx_issues_member_status;index:idx_issues_status_due,priority:1;size:20;not null;default:Issued;comment:状态"`
	Fine        int64      `gorm:"not null;default:0;comment:罚款"`
	FinePaid    bool       `gorm:"not null;default:false;comment:罚款是否已缴"`
	Remarks     string     `gorm:"size:500;comment:备注"`
	CreatedAt   time.Time  `gorm:"comment:创建时间"`
	UpdatedAt   time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (IssueModel) TableName() string {
	return "issues"
}
