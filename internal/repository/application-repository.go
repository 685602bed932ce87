package repository

import (
	"errors"

	"github.com/ss-immigration/application_service/internal/domain"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(app *domain.Application) error
	Save(app *domain.Application) error

	FindByID(id uint) (*domain.Application, error)
	FindByConfirmationNumber(code string) (*domain.Application, error)
	FindByPaymentReference(reference string) (*domain.Application, error)
	ListByUserID(userID uint) ([]domain.Application, error)
	ListAll(limit, offset int) ([]domain.Application, error)

	ExistsByConfirmationNumber(code string) (bool, error)
	// FindOtherByProofHash returns the application other than excludeID whose
	// stored receipt fingerprint equals hash, or (nil, nil) when there is none.
	FindOtherByProofHash(hash string, excludeID uint) (*domain.Application, error)

	Count() (int64, error)
	CountByStatus() (map[string]int64, error)
	CountByType() (map[string]int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(app *domain.Application) error {
	return r.db.Create(app).Error
}

func (r *applicationRepository) Save(app *domain.Application) error {
	return r.db.Save(app).Error
}

func (r *applicationRepository) FindByID(id uint) (*domain.Application, error) {
	var app domain.Application
	if err := r.db.First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindByConfirmationNumber(code string) (*domain.Application, error) {
	var app domain.Application
	if err := r.db.Where("confirmation_number = ?", code).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindByPaymentReference(reference string) (*domain.Application, error) {
	var app domain.Application
	if err := r.db.Where("payment_reference = ?", reference).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByUserID(userID uint) ([]domain.Application, error) {
	var apps []domain.Application
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) ListAll(limit, offset int) ([]domain.Application, error) {
	var apps []domain.Application
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) ExistsByConfirmationNumber(code string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Application{}).
		Where("confirmation_number = ?", code).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *applicationRepository) FindOtherByProofHash(hash string, excludeID uint) (*domain.Application, error) {
	var app domain.Application
	err := r.db.Where("payment_proof_hash = ? AND id <> ?", hash, excludeID).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Application{}).Count(&count).Error
	return count, err
}

type groupCount struct {
	Key   string `gorm:"column:key"`
	Count int64  `gorm:"column:count"`
}

func (r *applicationRepository) CountByStatus() (map[string]int64, error) {
	return r.countGrouped("status")
}

func (r *applicationRepository) CountByType() (map[string]int64, error) {
	return r.countGrouped("application_type")
}

func (r *applicationRepository) countGrouped(column string) (map[string]int64, error) {
	var rows []groupCount
	err := r.db.Model(&domain.Application{}).
		Select(column + " AS key, count(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Count
	}
	return out, nil
}
