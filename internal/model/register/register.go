package register

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/luissevero/ignitegofinances/internal/customerr"
	"github.com/luissevero/ignitegofinances/internal/entity/transaction"
	"github.com/luissevero/ignitegofinances/internal/entity/user"
	"github.com/luissevero/ignitegofinances/internal/logger"
)

const (
	nameRequired      = "Nome é obrigatório!"
	amountRequired    = "O valor é obrigatório!"
	amountNotNumeric  = "Informe um valor numérico!"
	amountNotPositive = "O valor não pode ser negativo!"
	typeRequired      = "Selecione o tipo da transação!"
	categoryRequired  = "Selecione a categoria!"
	typeUnknown       = "Tipo de transação inválido!"
	categoryUnknown   = "Categoria desconhecida!"
)

// Form is the raw user input of a new transaction.
type Form struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

// Event is published after a transaction was stored.
type Event struct {
	UserID      string             `json:"userId"`
	Transaction transaction.Record `json:"transaction"`
}

type transactionsStorage interface {
	AppendTransaction(ctx context.Context, userID string, rec transaction.Record) error
	ClearUserTransactions(ctx context.Context, userID string) error
}

type eventPublisher interface {
	PublishTransactionCreated(ctx context.Context, event Event) error
}

type cacheInvalidator interface {
	Invalidate(userID string)
}

type Service struct {
	storage   transactionsStorage
	publisher eventPublisher
	cache     cacheInvalidator
	clock     func() time.Time
	newID     func() string
}

type Option func(*Service)

func WithPublisher(p eventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithCacheInvalidator(c cacheInvalidator) Option {
	return func(s *Service) { s.cache = c }
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(storage transactionsStorage, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		clock:   time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks the form in the order the fields are filled in.
func Validate(form Form) (name string, amount decimal.Decimal, typ transaction.Type, category transaction.Category, err error) {
	name = strings.TrimSpace(form.Name)
	if name == "" {
		return "", decimal.Zero, "", "", customerr.NewValidation("name", nameRequired)
	}

	if amount, err = ParseAmount(form.Amount); err != nil {
		return "", decimal.Zero, "", "", err
	}

	if strings.TrimSpace(form.Type) == "" {
		return "", decimal.Zero, "", "", customerr.NewValidation("type", typeRequired)
	}
	if typ, err = transaction.ParseType(form.Type); err != nil {
		return "", decimal.Zero, "", "", customerr.NewValidation("type", typeUnknown)
	}

	if strings.TrimSpace(form.Category) == "" {
		return "", decimal.Zero, "", "", customerr.NewValidation("category", categoryRequired)
	}
	if category, err = transaction.ParseCategory(form.Category); err != nil {
		return "", decimal.Zero, "", "", customerr.NewValidation("category", categoryUnknown)
	}
	return name, amount, typ, category, nil
}

// ParseAmount accepts both "12.34" and "12,34".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, customerr.NewValidation("amount", amountRequired)
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, customerr.NewValidation("amount", amountNotNumeric)
	}
	if !amount.IsPositive() {
		return decimal.Zero, customerr.NewValidation("amount", amountNotPositive)
	}
	return amount, nil
}

func (s *Service) Register(ctx context.Context, u user.User, form Form) (rec transaction.Record, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "registerTransaction")
	defer func() {
		if err != nil {
			ext.Error.Set(span, true)
		}
		span.Finish()
	}()

	if err = u.Validate(); err != nil {
		return transaction.Record{}, customerr.NewValidation("user", err.Error())
	}

	name, amount, typ, category, err := Validate(form)
	if err != nil {
		return transaction.Record{}, err
	}

	rec = transaction.Record{
		ID:       s.newID(),
		Name:     name,
		Amount:   amount,
		Type:     typ,
		Category: category,
		Date:     s.clock(),
	}

	if err = s.storage.AppendTransaction(ctx, u.ID, rec); err != nil {
		logger.Error("failed to save transaction", zap.String("userID", u.ID), zap.Error(err))
		return transaction.Record{}, errors.Wrap(err, "register transaction")
	}
	logger.Info("transaction registered",
		zap.String("userID", u.ID),
		zap.String("id", rec.ID),
		zap.String("type", string(rec.Type)),
		zap.String("category", string(rec.Category)))

	if s.cache != nil {
		s.cache.Invalidate(u.ID)
	}
	if s.publisher != nil {
		if pubErr := s.publisher.PublishTransactionCreated(ctx, Event{UserID: u.ID, Transaction: rec}); pubErr != nil {
			logger.Error("failed to publish transaction event", zap.String("userID", u.ID), zap.Error(pubErr))
		}
	}
	return rec, nil
}

// Clear erases every transaction of the user.
func (s *Service) Clear(ctx context.Context, u user.User) error {
	if err := u.Validate(); err != nil {
		return customerr.NewValidation("user", err.Error())
	}
	if err := s.storage.ClearUserTransactions(ctx, u.ID); err != nil {
		return errors.Wrap(err, "clear transactions")
	}
	logger.Info("transactions cleared", zap.String("userID", u.ID))

	if s.cache != nil {
		s.cache.Invalidate(u.ID)
	}
	return nil
}
