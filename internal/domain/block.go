package domain

import (
	"strings"
	"time"
)

// Suffixes appended to generated block UIDs so a day's page can be scanned
// for prior dispenses without a separate tracking store.
const (
	QuoteSuffix = "-quote"
	ErrorSuffix = "-error"
)

// Page is a daily journal page, keyed by a date-derived title, root of a
// block tree.
type Page struct {
	UID       string    `gorm:"type:text;primaryKey" json:"uid"`
	Title     string    `gorm:"type:text;not null;uniqueIndex:idx_pages_title" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Page.
func (Page) TableName() string {
	return "pages"
}

// Block is an atomic content node in the document: text nested under either
// a page or another block. Order is the position among siblings.
type Block struct {
	UID       string    `gorm:"type:text;primaryKey" json:"uid"`
	ParentUID string    `gorm:"type:text;not null;index:idx_blocks_parent" json:"parent_uid"`
	PageUID   string    `gorm:"type:text;not null;index:idx_blocks_page" json:"page_uid"`
	Order     int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	Text      string    `gorm:"type:text" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Block.
func (Block) TableName() string {
	return "blocks"
}

// IsQuote reports whether the block was created by a quote dispense.
func (b Block) IsQuote() bool {
	return strings.HasSuffix(b.UID, QuoteSuffix)
}

// IsError reports whether the block was created by an error-report dispense.
func (b Block) IsError() bool {
	return strings.HasSuffix(b.UID, ErrorSuffix)
}
