package book

import (
	"strings"
	"time"
)

// Category 图书分类（封闭枚举）
type Category string

const (
	CategoryFiction    Category = "Fiction"
	CategoryNonFiction Category = "Non-Fiction"
	CategoryScience    Category = "Science"
	CategoryHistory    Category = "History"
	CategoryBiography  Category = "Biography"
	CategoryEducation  Category = "Education"
	CategoryYoungAdult Category = "Young Adult"
	CategoryMystery    Category = "Mystery"
	CategoryRomance    Category = "Romance"
	CategoryThriller   Category = "Thriller"
	CategoryOther      Category = "Other"
)

var categories = []Category{
	CategoryFiction, CategoryNonFiction, CategoryScience, CategoryHistory,
	CategoryBiography, CategoryEducation, CategoryYoungAdult, CategoryMystery,
	CategoryRomance, CategoryThriller, CategoryOther,
}

// Valid 是否为合法分类
func (c Category) Valid() bool {
	for _, v := range categories {
		if v == c {
			return true
		}
	}
	return false
}

// ItemType 馆藏类型
type ItemType string

const (
	ItemTypeBook     ItemType = "Book"
	ItemTypeMovie    ItemType = "Movie"
	ItemTypeMagazine ItemType = "Magazine"
)

// Valid 是否为合法馆藏类型
func (t ItemType) Valid() bool {
	return t == ItemTypeBook || t == ItemTypeMovie || t == ItemTypeMagazine
}

// Book 馆藏实体（聚合根）
// 设计说明：
// 1. AvailableCopies是借阅台账维护的冗余计数器，每笔未归还借阅占用一个副本
// 2. 不变量：0 <= AvailableCopies <= TotalCopies, TotalCopies >= 1
// 3. ISBN可选，非空时全局唯一（数据库层保证）
type Book struct {
	ID              uint
	Title           string
	Author          string
	ISBN            string // 可选
	Category        Category
	ItemType        ItemType
	TotalCopies     int
	AvailableCopies int
	PublishYear     int    // 0表示未知
	Publisher       string // 可选
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新馆藏（工厂方法）
// 新入库的馆藏所有副本都可借；分类和类型为空时取默认值
func NewBook(title, author, isbn string, category Category, itemType ItemType, totalCopies, publishYear int, publisher string) (*Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" || author == "" {
		return nil, ErrTitleAuthorRequired
	}
	if category == "" {
		category = CategoryOther
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	if itemType == "" {
		itemType = ItemTypeBook
	}
	if !itemType.Valid() {
		return nil, ErrInvalidItemType
	}
	if totalCopies == 0 {
		totalCopies = 1
	}
	if totalCopies < 1 {
		return nil, ErrInvalidCopies
	}

	now := time.Now()
	return &Book{
		Title:           title,
		Author:          author,
		ISBN:            strings.TrimSpace(isbn),
		Category:        category,
		ItemType:        itemType,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
		PublishYear:     publishYear,
		Publisher:       strings.TrimSpace(publisher),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// LentCopies 当前借出的副本数
func (b *Book) LentCopies() int {
	return b.TotalCopies - b.AvailableCopies
}

// HasAvailableCopy 是否还有可借副本
func (b *Book) HasAvailableCopy() bool {
	return b.AvailableCopies > 0
}

// Lend 借出一个副本
func (b *Book) Lend() error {
	if !b.HasAvailableCopy() {
		return ErrNoCopiesAvailable
	}
	b.AvailableCopies--
	b.UpdatedAt = time.Now()
	return nil
}

// Restock 归还一个副本
// 已经全部在馆时不再增加，返回false
func (b *Book) Restock() bool {
	if b.AvailableCopies >= b.TotalCopies {
		return false
	}
	b.AvailableCopies++
	b.UpdatedAt = time.Now()
	return true
}

// SetTotalCopies 调整馆藏总数
// 借出数量保持不变，新总数不能少于当前借出数
func (b *Book) SetTotalCopies(total int) error {
	if total < 1 {
		return ErrInvalidCopies
	}
	lent := b.LentCopies()
	if total < lent {
		return ErrCopiesBelowLent
	}
	b.TotalCopies = total
	b.AvailableCopies = total - lent
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateInfo 更新基本信息，空值表示不修改
func (b *Book) UpdateInfo(title, author, isbn string, category Category, itemType ItemType, publishYear int, publisher string) error {
	if category != "" && !category.Valid() {
		return ErrInvalidCategory
	}
	if itemType != "" && !itemType.Valid() {
		return ErrInvalidItemType
	}
	if t := strings.TrimSpace(title); t != "" {
		b.Title = t
	}
	if a := strings.TrimSpace(author); a != "" {
		b.Author = a
	}
	if i := strings.TrimSpace(isbn); i != "" {
		b.ISBN = i
	}
	if category != "" {
		b.Category = category
	}
	if itemType != "" {
		b.ItemType = itemType
	}
	if publishYear != 0 {
		b.PublishYear = publishYear
	}
	if p := strings.TrimSpace(publisher); p != "" {
		b.Publisher = p
	}
	b.UpdatedAt = time.Now()
	return nil
}
