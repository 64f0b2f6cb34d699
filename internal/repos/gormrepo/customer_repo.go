package gormrepo

import (
	"errors"

	"gorm.io/gorm"

	"crm/internal/domain"
)

type CustomerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *CustomerRepo) Create(c domain.Customer) error {
	row := fromCustomer(c)
	return translate(r.db.Create(&row).Error)
}

func (r *CustomerRepo) CreateMany(cs []domain.Customer) error {
	if len(cs) == 0 {
		return nil
	}
	rows := make([]Customer, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, fromCustomer(c))
	}
	return translate(r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	}))
}

func (r *CustomerRepo) EmailExists(email string) (bool, error) {
	var n int64
	err := r.db.Model(&Customer{}).Where("LOWER(email) = LOWER(?)", email).Count(&n).Error
	return n > 0, err
}

func (r *CustomerRepo) Get(id string) (domain.Customer, error) {
	var row Customer
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		return domain.Customer{}, translate(err)
	}
	return row.toDomain(), nil
}

func (r *CustomerRepo) List() ([]domain.Customer, error) {
	var rows []Customer
	if err := r.db.Order("created_at, name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
