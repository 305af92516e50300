package repository

import (
	"context"
	"time"

	constant "github.com/mobiliza/peticoes/internal/constant"
	"github.com/mobiliza/peticoes/internal/model"
	"gorm.io/gorm"
)

type SignatureRepository struct {
	*baseRepository
}

var signatureSortColumns = map[string]string{
	"created_date": "created_date",
	"full_name":    "full_name",
	"email":        "email",
	"city":         "city",
	"state":        "state",
}

func (sr SignatureRepository) Create(ctx context.Context, tx *gorm.DB, signature *model.Signature) (*model.Signature, error) {
	sr.logger.Debugf("Create signature with data: %v \n", signature)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.Signature{}).Create(signature).Error; err != nil {
		return signature, err
	}

	return signature, nil
}

func (sr SignatureRepository) List(ctx context.Context, tx *gorm.DB, sort string) ([]model.Signature, error) {
	sr.logger.Debugf("List signatures with sort: %q \n", sort)

	orderBy, err := ParseSort(sort, signatureSortColumns, "-created_date")
	if err != nil {
		return nil, err
	}

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	signatures := []model.Signature{}
	if err := db.WithContext(ctx).Model(&model.Signature{}).Order(orderBy).Find(&signatures).Error; err != nil {
		return nil, err
	}

	return signatures, nil
}

// ListByPetition pages through one petition's signatures, newest first. The
// optional since/until bounds are inclusive of the whole until day.
func (sr SignatureRepository) ListByPetition(ctx context.Context, tx *gorm.DB, petitionID string, since, until *time.Time, page, pageSize uint) ([]model.Signature, int64, error) {
	sr.logger.Debugf("List signatures for petition: %s \n", petitionID)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Signature{}).Where("petition_id = ?", petitionID)
	if since != nil {
		query = query.Where("created_date >= ?", *since)
	}
	if until != nil {
		query = query.Where("created_date < ?", until.AddDate(0, 0, 1))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	signatures := []model.Signature{}
	if err := query.Order("created_date DESC").
		Offset(int((page - 1) * pageSize)).Limit(int(pageSize)).
		Find(&signatures).Error; err != nil {
		return nil, 0, err
	}

	return signatures, total, nil
}

// ListAllByPetition returns every signature of one petition, oldest first.
// Used by the csv export, which streams the full set.
func (sr SignatureRepository) ListAllByPetition(ctx context.Context, tx *gorm.DB, petitionID string) ([]model.Signature, error) {
	sr.logger.Debugf("List all signatures for petition: %s \n", petitionID)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	signatures := []model.Signature{}
	if err := db.WithContext(ctx).Model(&model.Signature{}).
		Where("petition_id = ?", petitionID).
		Order("created_date ASC").
		Find(&signatures).Error; err != nil {
		return nil, err
	}

	return signatures, nil
}

func (sr SignatureRepository) CountByPetition(ctx context.Context, tx *gorm.DB, petitionID string) (int64, error) {
	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var total int64
	if err := db.WithContext(ctx).Model(&model.Signature{}).Where("petition_id = ?", petitionID).Count(&total).Error; err != nil {
		return 0, err
	}

	return total, nil
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type SignatureStats struct {
	Total int64        `json:"total"`
	Today int64        `json:"today"`
	ByDay []DailyCount `json:"by_day"`
}

// Stats aggregates one petition's signature counts: lifetime total, today's
// count and a 30 day daily series with gap days filled at zero.
func (sr SignatureRepository) Stats(ctx context.Context, tx *gorm.DB, petitionID string) (*SignatureStats, error) {
	sr.logger.Debugf("Stats for petition: %s \n", petitionID)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var total int64
	if err := db.WithContext(ctx).Model(&model.Signature{}).
		Where("petition_id = ?", petitionID).Count(&total).Error; err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	windowStart := today.AddDate(0, 0, -29)

	var rows []DailyCount
	if err := db.WithContext(ctx).Model(&model.Signature{}).
		Select("date(created_date) AS date, COUNT(*) AS count").
		Where("petition_id = ? AND created_date >= ?", petitionID, windowStart).
		Group("date(created_date)").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Date] = row.Count
	}

	stats := &SignatureStats{Total: total, ByDay: make([]DailyCount, 0, 30)}
	for d := windowStart; !d.After(today); d = d.AddDate(0, 0, 1) {
		day := d.Format("2006-01-02")
		stats.ByDay = append(stats.ByDay, DailyCount{Date: day, Count: counts[day]})
	}
	stats.Today = counts[today.Format("2006-01-02")]

	return stats, nil
}
