package service

import (
	"strings"

	"github.com/maxviazov/installment-console/internal/model"
	"github.com/maxviazov/installment-console/internal/repository"
	"github.com/shopspring/decimal"
)

// Messages shown when a form is rejected before reaching the backend.
const (
	msgAmountInvalid = "الرجاء إدخال مبلغ صحيح"
	msgIDInvalid     = "معرّف غير صالح"
)

// CustomerForm is the raw add/edit customer form.
type CustomerForm struct {
	Name        string `form:"name" json:"name"`
	Phone       string `form:"phone" json:"phone"`
	InitialDebt string `form:"initial_debt" json:"initial_debt"`
}

// EntryForm is the raw add-debt / pay-installment form.
type EntryForm struct {
	Amount      string `form:"amount" json:"amount"`
	Description string `form:"description" json:"description"`
}

// NewCustomer trims the contact fields. An empty or unparsable initial debt
// counts as zero; name and phone are checked by the backend.
func (f CustomerForm) NewCustomer() model.NewCustomer {
	debt, err := decimal.NewFromString(strings.TrimSpace(f.InitialDebt))
	if err != nil {
		debt = decimal.Zero
	}
	return model.NewCustomer{
		Name:        strings.TrimSpace(f.Name),
		Phone:       strings.TrimSpace(f.Phone),
		InitialDebt: debt,
	}
}

// Patch keeps only the fields that were filled in.
func (f CustomerForm) Patch() model.CustomerPatch {
	var p model.CustomerPatch
	if name := strings.TrimSpace(f.Name); name != "" {
		p.Name = &name
	}
	if phone := strings.TrimSpace(f.Phone); phone != "" {
		p.Phone = &phone
	}
	return p
}

// Entry parses the amount; the sign and the balance are the backend's call.
func (f EntryForm) Entry() (model.LedgerEntry, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(f.Amount))
	if err != nil {
		return model.LedgerEntry{}, newInvalidInput([]FieldError{{Field: "amount", Message: "must be a number"}})
	}
	return model.LedgerEntry{Amount: amount, Description: strings.TrimSpace(f.Description)}, nil
}

func validateID(field string, id int64) error {
	if id <= 0 {
		return newInvalidInput([]FieldError{{Field: field, Message: "must be > 0"}})
	}
	return nil
}

// normalizePage fills in the page size and clamps the page number, so a
// bad query string still lands on a real page.
func normalizePage(p repository.Page, perPage int) repository.Page {
	if p.PerPage <= 0 {
		p.PerPage = perPage
	}
	if p.Number < 1 {
		p.Number = 1
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}
