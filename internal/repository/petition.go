package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	constant "github.com/mobiliza/peticoes/internal/constant"
	"github.com/mobiliza/peticoes/internal/model"
	"gorm.io/gorm"
)

type PetitionRepository struct {
	*baseRepository
}

// Sortable fields exposed on the list endpoint, mapped to real column names.
var petitionSortColumns = map[string]string{
	"created_date": "created_date",
	"updated_date": "updated_date",
	"title":        "title",
	"goal":         "goal",
	"status":       "status",
	"deadline":     "deadline",
}

// Updatable json fields mapped to their columns. The update path only ever
// touches columns from this map.
var petitionUpdateColumns = map[string]string{
	"title":         "title",
	"slug":          "slug",
	"summary":       "summary",
	"description":   "description",
	"image_url":     "image_url",
	"logo_url":      "logo_url",
	"goal":          "goal",
	"deadline":      "deadline",
	"status":        "status",
	"require_cpf":   "require_cpf",
	"require_phone": "require_phone",
	"primary_color": "primary_color",
	"terms_text":    "terms_text",
}

type PetitionFilter struct {
	Slug   string
	Status string
}

func (pr PetitionRepository) List(ctx context.Context, tx *gorm.DB, sort string) ([]model.Petition, error) {
	pr.logger.Debugf("List petitions with sort: %q \n", sort)

	orderBy, err := ParseSort(sort, petitionSortColumns, "-created_date")
	if err != nil {
		return nil, err
	}

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	petitions := []model.Petition{}
	if err := db.WithContext(ctx).Model(&model.Petition{}).Order(orderBy).Find(&petitions).Error; err != nil {
		return nil, err
	}

	return petitions, nil
}

// Filter returns petitions matching the exact-match conjunction of the given
// criteria. Absent criteria are omitted from the condition.
func (pr PetitionRepository) Filter(ctx context.Context, tx *gorm.DB, filter PetitionFilter) ([]model.Petition, error) {
	pr.logger.Debugf("Filter petitions with criteria: %+v \n", filter)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Petition{})
	if filter.Slug != "" {
		query = query.Where("slug = ?", filter.Slug)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	petitions := []model.Petition{}
	if err := query.Order("created_date DESC").Find(&petitions).Error; err != nil {
		return nil, err
	}

	return petitions, nil
}

func (pr PetitionRepository) Create(ctx context.Context, tx *gorm.DB, petition *model.Petition) (*model.Petition, error) {
	pr.logger.Debugf("Create petition with data: %v \n", petition)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.Petition{}).Create(petition).Error; err != nil {
		return petition, err
	}

	return petition, nil
}

// Update applies the given json fields to one row and refreshes updated_date.
// Returns ErrEmptyUpdate when no fields are supplied and gorm.ErrRecordNotFound
// when the id does not exist.
func (pr PetitionRepository) Update(ctx context.Context, tx *gorm.DB, id string, fields map[string]any) (*model.Petition, error) {
	pr.logger.Debugf("Update petition %s with fields: %v \n", id, fields)

	columns, err := filterUpdateColumns(fields, petitionUpdateColumns)
	if err != nil {
		return nil, err
	}
	columns["updated_date"] = time.Now()

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	result := db.WithContext(ctx).Model(&model.Petition{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var petition model.Petition
	if err := db.WithContext(ctx).Model(&model.Petition{}).Where("id = ?", id).First(&petition).Error; err != nil {
		return nil, err
	}

	return &petition, nil
}

func (pr PetitionRepository) GetById(ctx context.Context, tx *gorm.DB, id string) (*model.Petition, error) {
	pr.logger.Debugf("Get petition by id: %s \n", id)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var petition model.Petition
	if err := db.WithContext(ctx).Model(&model.Petition{}).Where("id = ?", id).First(&petition).Error; err != nil {
		return nil, err
	}

	return &petition, nil
}

// GetByIdOrSlug resolves a petition by either its server-assigned uuid or its
// human-chosen slug, whichever matches.
func (pr PetitionRepository) GetByIdOrSlug(ctx context.Context, tx *gorm.DB, key string) (*model.Petition, error) {
	pr.logger.Debugf("Get petition by id or slug: %s \n", key)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Petition{})
	if _, err := uuid.Parse(key); err == nil {
		query = query.Where("id = ? OR slug = ?", key, key)
	} else {
		query = query.Where("slug = ?", key)
	}

	var petition model.Petition
	if err := query.First(&petition).Error; err != nil {
		return nil, err
	}

	return &petition, nil
}
