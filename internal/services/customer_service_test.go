package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/domain"
)

func TestCustomerService_PhoneFormats(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		phone string
		ok    bool
	}{
		{"", true},
		{"+1234567890", true},
		{"+123456789012345", true},
		{"123-456-7890", true},
		{"+123456789", false},        // 9 digits
		{"+1234567890123456", false}, // 16 digits
		{"1234567890", false},        // no plus
		{"123-4567-890", false},
		{"(123) 456-7890", false},
		{"+12345abcde", false},
		{"123-456-7890 ", false},
		{" +12345678901", false},
		{"123-456-7890\n", false},
		{"   ", false},
	}
	for i, tc := range cases {
		c, err := f.customerSvc.Create(domain.CustomerInput{
			Name:  "Phone Tester",
			Email: fmt.Sprintf("phone%d@example.com", i),
			Phone: tc.phone,
		})
		if tc.ok {
			if assert.NoError(t, err, "phone %q", tc.phone) {
				assert.Equal(t, tc.phone, c.Phone)
			}
			continue
		}
		assert.True(t, domain.IsValidation(err), "phone %q: want ValidationError, got %v", tc.phone, err)
	}
}

func TestCustomerService_DuplicateEmail(t *testing.T) {
	f := newFixture(t)

	first, err := f.customerSvc.Create(domain.CustomerInput{Name: "Alice", Email: "alice@example.com", Phone: "+1234567890"})
	require.NoError(t, err)

	_, err = f.customerSvc.Create(domain.CustomerInput{Name: "Alice Again", Email: "ALICE@example.com"})
	assert.True(t, domain.IsValidation(err), "want ValidationError for duplicate email, got %v", err)

	got, err := f.customers.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "+1234567890", got.Phone)

	all, err := f.customers.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCustomerService_RejectsBadNameAndEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.customerSvc.Create(domain.CustomerInput{Name: "  ", Email: "x@example.com"})
	assert.True(t, domain.IsValidation(err), "empty name: got %v", err)

	_, err = f.customerSvc.Create(domain.CustomerInput{Name: "X", Email: "not-an-email"})
	assert.True(t, domain.IsValidation(err), "bad email: got %v", err)
}

func TestCustomerService_BulkCreate_PartialCommit(t *testing.T) {
	f := newFixture(t)

	res, err := f.customerSvc.BulkCreate([]domain.CustomerInput{
		{Name: "A", Email: "a@example.com", Phone: "+1234567890"},
		{Name: "B", Email: "b@example.com", Phone: "bad-phone"},
		{Name: "C", Email: "c@example.com"},
	})
	require.NoError(t, err)
	assert.False(t, res.Success, "want success=false when any entry failed")
	require.Len(t, res.Errors, 1)
	assert.Regexp(t, `^Index 1:`, res.Errors[0])
	require.Len(t, res.Created, 2)
	assert.Equal(t, "a@example.com", res.Created[0].Email)
	assert.Equal(t, "c@example.com", res.Created[1].Email)

	all, err := f.customers.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCustomerService_BulkCreate_DuplicatesInBatchAndStore(t *testing.T) {
	f := newFixture(t)
	_, err := f.customerSvc.Create(domain.CustomerInput{Name: "Old", Email: "old@example.com"})
	require.NoError(t, err)

	res, err := f.customerSvc.BulkCreate([]domain.CustomerInput{
		{Name: "New", Email: "new@example.com"},
		{Name: "New Twin", Email: "NEW@example.com"},
		{Name: "Old Twin", Email: "old@example.com"},
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Len(t, res.Created, 1)
	require.Len(t, res.Errors, 2)
	assert.Regexp(t, `^Index 1:`, res.Errors[0])
	assert.Regexp(t, `^Index 2:`, res.Errors[1])
}

func TestCustomerService_BulkCreate_AllValid(t *testing.T) {
	f := newFixture(t)

	res, err := f.customerSvc.BulkCreate([]domain.CustomerInput{
		{Name: "A", Email: "a@example.com"},
		{Name: "B", Email: "b@example.com", Phone: "123-456-7890"},
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.Errors)
	assert.Len(t, res.Created, 2)
}
