package messages

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/luissevero/ignitegofinances/internal/customerr"
	"github.com/luissevero/ignitegofinances/internal/entity/transaction"
	"github.com/luissevero/ignitegofinances/internal/entity/user"
	"github.com/luissevero/ignitegofinances/internal/model/dashboard"
	"github.com/luissevero/ignitegofinances/internal/model/register"
	"github.com/luissevero/ignitegofinances/internal/model/storage"
)

type senderMock struct {
	mock.Mock
}

func (m *senderMock) SendMessage(text string, userID int64) error {
	return m.Called(text, userID).Error(0)
}

type failingRegistrar struct{}

func (failingRegistrar) Register(context.Context, user.User, register.Form) (transaction.Record, error) {
	return transaction.Record{}, customerr.NewPersistence("append transaction", errors.New("disk full"))
}

func (failingRegistrar) Clear(context.Context, user.User) error {
	return customerr.NewPersistence("clear transactions", errors.New("disk full"))
}

var created = time.Date(2021, time.September, 11, 12, 0, 0, 0, time.UTC)

func newTestService(sender messageSender) *Service {
	st := storage.NewTransactionStorage(storage.NewInMemStorage(), "@gofinances")
	dashboards := dashboard.NewService(st, dashboard.NewFormatter(time.UTC))
	registrar := register.NewService(st,
		register.WithClock(func() time.Time { return created }),
		register.WithCacheInvalidator(dashboards))
	return NewService(sender, registrar, dashboards)
}

func Test_OnStartCommand_ShouldAnswerWithIntroMessage(t *testing.T) {
	sender := &senderMock{}
	sender.On("SendMessage", helloMessage, int64(123)).Return(nil).Once()

	err := newTestService(sender).HandleIncomingMessage(context.Background(), Message{Text: "/start", UserID: 123})

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func Test_OnUnknownCommand_ShouldAnswerWithHelpMessage(t *testing.T) {
	sender := &senderMock{}
	sender.On("SendMessage", dontUnderstandMessage, int64(123)).Return(nil).Once()

	err := newTestService(sender).HandleIncomingMessage(context.Background(), Message{Text: "/none", UserID: 123})

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func Test_OnRegisterWithoutArgs_ShouldExplainUsage(t *testing.T) {
	sender := &senderMock{}
	sender.On("SendMessage", incorrectUsageMessage, int64(123)).Return(nil).Once()

	err := newTestService(sender).HandleIncomingMessage(context.Background(), Message{Text: "/register food", UserID: 123})

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func Test_OnInvalidRegister_ShouldAnswerWithValidationMessage(t *testing.T) {
	sender := &senderMock{}
	sender.On("SendMessage", "O valor não pode ser negativo!", int64(123)).Return(nil).Once()

	err := newTestService(sender).HandleIncomingMessage(context.Background(),
		Message{Text: "/register outcome food -3 Pizza", UserID: 123})

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func Test_OnRegisterThenDashboard_ShouldShowHighlights(t *testing.T) {
	ctx := context.Background()
	sender := &senderMock{}
	sender.On("SendMessage", registeredMessage, int64(123)).Return(nil).Twice()

	var dashboardText string
	sender.On("SendMessage", mock.MatchedBy(func(text string) bool { return strings.HasPrefix(text, "Olá") }), int64(123)).
		Run(func(args mock.Arguments) { dashboardText = args.String(0) }).
		Return(nil).Once()

	svc := newTestService(sender)
	require.NoError(t, svc.HandleIncomingMessage(ctx, Message{Text: "/register income salary 100 Desenvolvimento de site", UserID: 123, UserName: "Luis"}))
	require.NoError(t, svc.HandleIncomingMessage(ctx, Message{Text: "/register negative food 40 Hamburgueria", UserID: 123, UserName: "Luis"}))
	require.NoError(t, svc.HandleIncomingMessage(ctx, Message{Text: "/dashboard", UserID: 123, UserName: "Luis"}))

	sender.AssertExpectations(t)
	assert.Contains(t, dashboardText, "Entradas: R$ 100,00 (Última entrada dia 11 de setembro)")
	assert.Contains(t, dashboardText, "Saídas: R$ 40,00 (Última saída dia 11 de setembro)")
	assert.Contains(t, dashboardText, "Total: R$ 60,00 (01 a 11 de setembro)")
	assert.Contains(t, dashboardText, "11/09/21 Alimentação · Hamburgueria: - R$ 40,00")
}

func Test_OnUnsupportedPeriod_ShouldExplain(t *testing.T) {
	sender := &senderMock{}
	sender.On("SendMessage", "Período decade não suportado!", int64(123)).Return(nil).Once()

	err := newTestService(sender).HandleIncomingMessage(context.Background(), Message{Text: "/dashboard decade", UserID: 123})

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func Test_OnPersistenceFailure_ShouldApologise(t *testing.T) {
	sender := &senderMock{}
	sender.On("SendMessage", errorPrefix+cannotSaveMessage, int64(123)).Return(nil).Once()

	svc := NewService(sender, failingRegistrar{}, dashboard.NewService(
		storage.NewTransactionStorage(storage.NewInMemStorage(), "@gofinances"), dashboard.NewFormatter(time.UTC)))
	err := svc.HandleIncomingMessage(context.Background(), Message{Text: "/register negative food 10 Pizza", UserID: 123})

	assert.True(t, customerr.IsPersistence(err))
	sender.AssertExpectations(t)
}

func Test_OnClear_ShouldEmptyDashboard(t *testing.T) {
	ctx := context.Background()
	sender := &senderMock{}
	sender.On("SendMessage", registeredMessage, int64(7)).Return(nil).Once()
	sender.On("SendMessage", clearedMessage, int64(7)).Return(nil).Once()
	sender.On("SendMessage", mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "Total: R$ 0,00 (Não há transações)")
	}), int64(7)).Return(nil).Once()

	svc := newTestService(sender)
	require.NoError(t, svc.HandleIncomingMessage(ctx, Message{Text: "/register in leisure 15 Cinema", UserID: 7}))
	require.NoError(t, svc.HandleIncomingMessage(ctx, Message{Text: "/clear", UserID: 7}))
	require.NoError(t, svc.HandleIncomingMessage(ctx, Message{Text: "/dashboard", UserID: 7}))

	sender.AssertExpectations(t)
}

func Test_ParseCommand(t *testing.T) {
	cmd, arg := parseCommand(" /dashboard month ")
	assert.Equal(t, "/dashboard", cmd)
	assert.Equal(t, "month", arg)

	cmd, arg = parseCommand("hello there")
	assert.Equal(t, "hello", cmd)
	assert.Equal(t, "there", arg)

	assert.Equal(t, "unknown", commandLabel("/whatever"))
	assert.Equal(t, "text", commandLabel("hi"))
	assert.Equal(t, registerCommand, commandLabel("/register a b c d"))
}

func Test_FormatCategories_ShouldListEveryKey(t *testing.T) {
	text := formatCategories()
	for _, c := range transaction.Categories {
		assert.Contains(t, text, string(c.Key))
	}
}
