package messages

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/luissevero/ignitegofinances/internal/customerr"
	"github.com/luissevero/ignitegofinances/internal/entity/transaction"
	"github.com/luissevero/ignitegofinances/internal/entity/user"
	"github.com/luissevero/ignitegofinances/internal/model/dashboard"
	"github.com/luissevero/ignitegofinances/internal/model/register"
)

const (
	dontUnderstandMessage = "Não entendi :("
	helloMessage          = "Olá! Eu sou o bot do GoFinances 🤖\n" +
		"/register <positive|negative> <categoria> <valor> <nome>\n" +
		"/dashboard [week|month|year]\n" +
		"/categories\n" +
		"/clear"
	loveToTalkMessage = "Adoraria conversar mais sobre isso!"
	registeredMessage = "Transação salva!"
	clearedMessage    = "Todas as suas transações foram removidas"

	incorrectUsageMessage     = "Uso incorreto do comando. Tente /register negative food 59,90 Pizza"
	cannotGetDashboardMessage = "Não foi possível carregar sua dashboard agora. Tente mais tarde"
	cannotSaveMessage         = "Não foi possível salvar sua transação agora. Tente mais tarde"
	cannotClearMessage        = "Não foi possível remover suas transações agora. Tente mais tarde"
)

const (
	startCommand      = "/start"
	registerCommand   = "/register"
	dashboardCommand  = "/dashboard"
	categoriesCommand = "/categories"
	clearCommand      = "/clear"
)

const registerArgs = 4

var typeAliases = map[string]transaction.Type{
	"income":  transaction.Positive,
	"in":      transaction.Positive,
	"+":       transaction.Positive,
	"outcome": transaction.Negative,
	"out":     transaction.Negative,
	"-":       transaction.Negative,
}

type registrar interface {
	Register(ctx context.Context, u user.User, form register.Form) (transaction.Record, error)
	Clear(ctx context.Context, u user.User) error
}

type dashboardProvider interface {
	GetDashboard(ctx context.Context, u user.User, period string) (dashboard.Dashboard, error)
}

type handler func(ctx context.Context, arg string, u user.User) (string, error)

type handlerMap map[string]handler

type HandlerService struct {
	handlersMap handlerMap
	registrar   registrar
	dashboards  dashboardProvider
}

func newHandler(registrar registrar, dashboards dashboardProvider) *HandlerService {
	res := &HandlerService{
		registrar:  registrar,
		dashboards: dashboards,
	}
	res.handlersMap = newMap(res)
	return res
}

func (s *HandlerService) HandleMessage(ctx context.Context, text string, u user.User) (string, error) {
	cmd, arg := parseCommand(text)

	handler, ok := s.handlersMap[cmd]
	if ok {
		return handler(ctx, arg, u)
	}
	return dontUnderstandMessage, nil
}

func newMap(s *HandlerService) handlerMap {
	m := make(handlerMap)
	m[startCommand] = s.handleStart
	m[registerCommand] = s.handleRegister
	m[dashboardCommand] = s.handleDashboard
	m[categoriesCommand] = s.handleCategories
	m[clearCommand] = s.handleClear

	m[""] = s.handleNoCommand

	return m
}

func (s *HandlerService) handleStart(_ context.Context, _ string, _ user.User) (string, error) {
	return helloMessage, nil
}

func (s *HandlerService) handleRegister(ctx context.Context, arg string, u user.User) (string, error) {
	args := strings.Fields(arg)
	if len(args) < registerArgs {
		return incorrectUsageMessage, nil
	}

	typ := args[0]
	if alias, ok := typeAliases[strings.ToLower(typ)]; ok {
		typ = string(alias)
	}

	_, err := s.registrar.Register(ctx, u, register.Form{
		Type:     typ,
		Category: args[1],
		Amount:   args[2],
		Name:     strings.Join(args[3:], " "),
	})
	if err != nil {
		var verr *customerr.ValidationError
		if errors.As(err, &verr) {
			return verr.Err, nil
		}
		return cannotSaveMessage, errors.Wrap(err, "handle register")
	}
	return registeredMessage, nil
}

func (s *HandlerService) handleDashboard(ctx context.Context, arg string, u user.User) (string, error) {
	period := strings.ToLower(strings.TrimSpace(arg))
	d, err := s.dashboards.GetDashboard(ctx, u, period)
	if err != nil {
		var verr *customerr.ValidationError
		if errors.As(err, &verr) {
			return verr.Err, nil
		}
		return cannotGetDashboardMessage, errors.Wrap(err, "handle dashboard")
	}
	return formatDashboard(u, d), nil
}

func (s *HandlerService) handleCategories(_ context.Context, _ string, _ user.User) (string, error) {
	return formatCategories(), nil
}

func (s *HandlerService) handleClear(ctx context.Context, _ string, u user.User) (string, error) {
	if err := s.registrar.Clear(ctx, u); err != nil {
		return cannotClearMessage, errors.Wrap(err, "handle clear")
	}
	return clearedMessage, nil
}

func (s *HandlerService) handleNoCommand(_ context.Context, _ string, _ user.User) (string, error) {
	return loveToTalkMessage, nil
}
