package services

import (
	"errors"
	"fmt"
	"strings"

	"crm/internal/domain"
	"crm/internal/validate"

	"github.com/google/uuid"
)

type CustomerService struct {
	Customers CustomerRepository
	NewID     func() string
}

func NewCustomerService(customers CustomerRepository) *CustomerService {
	return &CustomerService{Customers: customers, NewID: uuid.NewString}
}

// BulkResult is the outcome of BulkCreate. Success is false whenever any
// entry was rejected, even though the valid entries were committed.
type BulkResult struct {
	Created []domain.Customer
	Errors  []string
	Success bool
}

func (s *CustomerService) check(in domain.CustomerInput) (domain.Customer, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Customer{}, domain.Invalid("name", "name is required (max 100 characters)")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return domain.Customer{}, domain.Invalid("email", "invalid email address")
	}
	phone, ok := validate.Phone(in.Phone)
	if !ok {
		return domain.Customer{}, domain.Invalid("phone", "invalid phone format, use +1234567890 or 123-456-7890")
	}
	return domain.Customer{Name: name, Email: email, Phone: phone}, nil
}

func (s *CustomerService) checkUnique(email string) error {
	exists, err := s.Customers.EmailExists(email)
	if err != nil {
		return err
	}
	if exists {
		return domain.Invalid("email", domain.ErrDuplicateEmail.Error())
	}
	return nil
}

func (s *CustomerService) Create(in domain.CustomerInput) (domain.Customer, error) {
	c, err := s.check(in)
	if err != nil {
		return domain.Customer{}, err
	}
	if err := s.checkUnique(c.Email); err != nil {
		return domain.Customer{}, err
	}
	c.ID = s.NewID()
	if err := s.Customers.Create(c); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return domain.Customer{}, domain.Invalid("email", err.Error())
		}
		return domain.Customer{}, err
	}
	return c, nil
}

// BulkCreate validates every entry, skips the invalid ones with an indexed
// message and commits the rest in a single transaction.
func (s *CustomerService) BulkCreate(ins []domain.CustomerInput) (BulkResult, error) {
	res := BulkResult{Created: []domain.Customer{}, Errors: []string{}}
	seen := make(map[string]bool, len(ins))
	valid := make([]domain.Customer, 0, len(ins))

	for i, in := range ins {
		c, err := s.check(in)
		if err == nil {
			if seen[strings.ToLower(c.Email)] {
				err = domain.Invalid("email", domain.ErrDuplicateEmail.Error())
			} else {
				err = s.checkUnique(c.Email)
			}
		}
		if err != nil {
			if !domain.IsValidation(err) {
				return BulkResult{}, err
			}
			res.Errors = append(res.Errors, fmt.Sprintf("Index %d: %s", i, err))
			continue
		}
		seen[strings.ToLower(c.Email)] = true
		c.ID = s.NewID()
		valid = append(valid, c)
	}

	if len(valid) > 0 {
		if err := s.Customers.CreateMany(valid); err != nil {
			return BulkResult{}, fmt.Errorf("bulk create customers: %w", err)
		}
		res.Created = valid
	}
	res.Success = len(res.Errors) == 0
	return res, nil
}

func (s *CustomerService) Get(id string) (domain.Customer, error) {
	return s.Customers.Get(id)
}

func (s *CustomerService) List() ([]domain.Customer, error) {
	return s.Customers.List()
}
