package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	constant "github.com/mobiliza/peticoes/internal/constant"
	"github.com/mobiliza/peticoes/internal/model"
	"gorm.io/gorm"
)

type LinkPageRepository struct {
	*baseRepository
}

var linkPageUpdateColumns = map[string]string{
	"slug":             "slug",
	"title":            "title",
	"bio":              "bio",
	"avatar_url":       "avatar_url",
	"background_color": "background_color",
	"button_color":     "button_color",
	"text_color":       "text_color",
	"show_counters":    "show_counters",
}

func (lr LinkPageRepository) List(ctx context.Context, tx *gorm.DB) ([]model.LinkPage, error) {
	lr.logger.Debugf("List link pages \n")

	db := lr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	pages := []model.LinkPage{}
	if err := db.WithContext(ctx).Model(&model.LinkPage{}).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("link_page_items.position ASC") }).
		Order("created_date DESC").Find(&pages).Error; err != nil {
		return nil, err
	}

	return pages, nil
}

func (lr LinkPageRepository) GetByIdOrSlug(ctx context.Context, tx *gorm.DB, key string) (*model.LinkPage, error) {
	lr.logger.Debugf("Get link page by id or slug: %s \n", key)

	db := lr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.LinkPage{}).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("link_page_items.position ASC") })
	if _, err := uuid.Parse(key); err == nil {
		query = query.Where("id = ? OR slug = ?", key, key)
	} else {
		query = query.Where("slug = ?", key)
	}

	var page model.LinkPage
	if err := query.First(&page).Error; err != nil {
		return nil, err
	}

	return &page, nil
}

func (lr LinkPageRepository) Create(ctx context.Context, tx *gorm.DB, page *model.LinkPage) (*model.LinkPage, error) {
	lr.logger.Debugf("Create link page with data: %v \n", page)

	db := lr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.LinkPage{}).Create(page).Error; err != nil {
		return page, err
	}

	return page, nil
}

// Update replaces scalar fields from the map and, when items is non-nil, swaps
// the ordered item list wholesale. Runs in one transaction.
func (lr LinkPageRepository) Update(ctx context.Context, tx *gorm.DB, id string, fields map[string]any, items []model.LinkPageItem) (*model.LinkPage, error) {
	lr.logger.Debugf("Update link page %s with fields: %v \n", id, fields)

	if len(fields) == 0 && items == nil {
		return nil, ErrEmptyUpdate
	}

	db := lr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.LinkPage
		if err := tx.Model(&model.LinkPage{}).Where("id = ?", id).First(&existing).Error; err != nil {
			return err
		}

		if len(fields) > 0 {
			columns, err := filterUpdateColumns(fields, linkPageUpdateColumns)
			if err != nil {
				return err
			}
			columns["updated_date"] = time.Now()

			if err := tx.Model(&model.LinkPage{}).Where("id = ?", id).Updates(columns).Error; err != nil {
				return err
			}
		}

		if items != nil {
			if err := tx.Where("link_page_id = ?", id).Delete(&model.LinkPageItem{}).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].LinkPageID = id
				items[i].Position = i
			}
			if len(items) > 0 {
				if err := tx.Create(&items).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return lr.GetByIdOrSlug(ctx, tx, id)
}
