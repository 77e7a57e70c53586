package service

import (
	"context"
	"errors"

	"github.com/maxviazov/installment-console/internal/repository"
	"github.com/rs/zerolog"
)

// Fallback notices for when the backend gave no message of its own.
const (
	FailAddCustomer       = "حدث خطأ أثناء إضافة العميل"
	FailUpdateCustomer    = "حدث خطأ أثناء تحديث البيانات"
	FailDeleteCustomer    = "حدث خطأ أثناء حذف العميل"
	FailAddDebt           = "حدث خطأ أثناء إضافة المديونية"
	FailPayInstallment    = "حدث خطأ أثناء تسجيل الدفعة"
	FailDeleteTransaction = "حدث خطأ أثناء حذف المعاملة"

	DoneDefault = "تمت العملية بنجاح"
)

type actionService struct {
	customers repository.CustomerRepository
	ledger    repository.LedgerRepository
	log       zerolog.Logger
}

func NewActionService(customers repository.CustomerRepository, ledger repository.LedgerRepository, logger zerolog.Logger) ActionService {
	l := logger.With().Str("module", "service").Str("component", "actions").Logger()
	return &actionService{customers: customers, ledger: ledger, log: l}
}

func (s *actionService) AddCustomer(ctx context.Context, f CustomerForm) (Notice, error) {
	msg, err := s.customers.Create(ctx, f.NewCustomer())
	return s.notice("add_customer", 0, msg, err, FailAddCustomer)
}

func (s *actionService) UpdateCustomer(ctx context.Context, id int64, f CustomerForm) (Notice, error) {
	if err := validateID("id", id); err != nil {
		return failure(msgIDInvalid), err
	}
	msg, err := s.customers.Update(ctx, id, f.Patch())
	return s.notice("update_customer", id, msg, err, FailUpdateCustomer)
}

func (s *actionService) DeleteCustomer(ctx context.Context, id int64) (Notice, error) {
	if err := validateID("id", id); err != nil {
		return failure(msgIDInvalid), err
	}
	msg, err := s.customers.Delete(ctx, id)
	return s.notice("delete_customer", id, msg, err, FailDeleteCustomer)
}

func (s *actionService) AddDebt(ctx context.Context, customerID int64, f EntryForm) (Notice, error) {
	if err := validateID("customer_id", customerID); err != nil {
		return failure(msgIDInvalid), err
	}
	entry, err := f.Entry()
	if err != nil {
		return failure(msgAmountInvalid), err
	}
	msg, err := s.ledger.AddDebt(ctx, customerID, entry)
	return s.notice("add_debt", customerID, msg, err, FailAddDebt)
}

func (s *actionService) PayInstallment(ctx context.Context, customerID int64, f EntryForm) (Notice, error) {
	if err := validateID("customer_id", customerID); err != nil {
		return failure(msgIDInvalid), err
	}
	entry, err := f.Entry()
	if err != nil {
		return failure(msgAmountInvalid), err
	}
	msg, err := s.ledger.PayInstallment(ctx, customerID, entry)
	return s.notice("pay_installment", customerID, msg, err, FailPayInstallment)
}

func (s *actionService) DeleteTransaction(ctx context.Context, id int64) (Notice, error) {
	if err := validateID("id", id); err != nil {
		return failure(msgIDInvalid), err
	}
	msg, err := s.ledger.Delete(ctx, id)
	return s.notice("delete_transaction", id, msg, err, FailDeleteTransaction)
}

// notice turns a repository outcome into what the user sees: the backend's
// own message when it sent one, otherwise the action's fallback.
func (s *actionService) notice(action string, id int64, msg string, err error, fallback string) (Notice, error) {
	if err != nil {
		ev := s.log.Warn()
		if errors.Is(err, repository.ErrUnavailable) || errors.Is(err, repository.ErrInternalServer) {
			ev = s.log.Error()
		}
		ev.Err(err).Str("action", action).Int64("id", id).Msg("action failed")

		if m := repository.ServerMessage(err); m != "" {
			return failure(m), err
		}
		return failure(fallback), err
	}
	s.log.Info().Str("action", action).Int64("id", id).Msg("action done")
	if msg == "" {
		msg = DoneDefault
	}
	return Notice{Severity: SeveritySuccess, Message: msg}, nil
}

func failure(msg string) Notice { return Notice{Severity: SeverityError, Message: msg} }
