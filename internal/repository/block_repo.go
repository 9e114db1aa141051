package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/timmy/quotewise/internal/domain"
	"gorm.io/gorm"
)

// BlockRepository handles page and block data operations.
type BlockRepository struct {
	db *gorm.DB
}

// NewBlockRepository creates a new BlockRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *BlockRepository: repository instance bound to db.
func NewBlockRepository(db *gorm.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// EnsurePage creates the page if it does not exist yet.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - uid: page UID.
//   - title: page title.
// Returns:
//   - error: non-nil if the lookup or insert fails.
func (r *BlockRepository) EnsurePage(ctx context.Context, uid, title string) error {
	var page domain.Page
	err := r.db.WithContext(ctx).First(&page, "uid = ?", uid).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	page = domain.Page{UID: uid, Title: title}
	return r.db.WithContext(ctx).Create(&page).Error
}

// GetPage retrieves a page by UID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - uid: page UID.
// Returns:
//   - *domain.Page: page record if found.
//   - error: non-nil if lookup fails.
func (r *BlockRepository) GetPage(ctx context.Context, uid string) (*domain.Page, error) {
	var page domain.Page
	if err := r.db.WithContext(ctx).First(&page, "uid = ?", uid).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// ListDescendants returns every block transitively reachable from the page
// through parent/child edges, at any depth. The walk is breadth-first over
// ParentUID; children of children count the same as direct children.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - pageUID: root page UID.
// Returns:
//   - []domain.Block: all descendant blocks, parents before their children.
//   - error: non-nil if a query fails.
func (r *BlockRepository) ListDescendants(ctx context.Context, pageUID string) ([]domain.Block, error) {
	var all []domain.Block
	frontier := []string{pageUID}

	for len(frontier) > 0 {
		var children []domain.Block
		if err := r.db.WithContext(ctx).
			Where("parent_uid IN ?", frontier).
			Order("parent_uid, sort_order").
			Find(&children).Error; err != nil {
			return nil, fmt.Errorf("failed to list blocks under %s: %w", pageUID, err)
		}
		if len(children) == 0 {
			break
		}
		all = append(all, children...)
		frontier = frontier[:0]
		for _, b := range children {
			frontier = append(frontier, b.UID)
		}
	}

	return all, nil
}

// Create inserts a block at the given sibling order under its parent,
// shifting existing siblings at or below that order down by one. Runs in a
// transaction so the shift and the insert land together.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - block: block to persist; UID, ParentUID, PageUID and Order must be set.
// Returns:
//   - error: non-nil if the insert fails.
func (r *BlockRepository) Create(ctx context.Context, block *domain.Block) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Block{}).
			Where("parent_uid = ? AND sort_order >= ?", block.ParentUID, block.Order).
			Update("sort_order", gorm.Expr("sort_order + 1")).Error; err != nil {
			return fmt.Errorf("failed to shift sibling blocks: %w", err)
		}
		if err := tx.Create(block).Error; err != nil {
			return fmt.Errorf("failed to create block: %w", err)
		}
		return nil
	})
}

// CountByPage counts blocks belonging to a page.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - pageUID: page UID.
// Returns:
//   - int64: number of blocks on the page.
//   - error: non-nil if the query fails.
func (r *BlockRepository) CountByPage(ctx context.Context, pageUID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Block{}).
		Where("page_uid = ?", pageUID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
