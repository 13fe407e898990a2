package messages

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"

	"github.com/luissevero/ignitegofinances/internal/entity/user"
)

const errorPrefix = "Desculpe, algo deu errado...\n"

type messageSender interface {
	SendMessage(text string, userID int64) error
}

type MessageHandler interface {
	HandleMessage(ctx context.Context, text string, u user.User) (string, error)
}

type Service struct {
	tgClient messageSender
	handler  MessageHandler
}

func NewService(tgClient messageSender, registrar registrar, dashboards dashboardProvider) *Service {
	return &Service{
		tgClient: tgClient,
		handler:  newHandler(registrar, dashboards),
	}
}

type Message struct {
	Text     string
	UserID   int64
	UserName string
}

func (m Message) user() user.User {
	return user.User{ID: formatUserID(m.UserID), Name: m.UserName}
}

func (s *Service) HandleIncomingMessage(ctx context.Context, msg Message) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "handleMessage")
	defer span.Finish()

	cmd := commandLabel(msg.Text)
	span.SetTag("command", cmd)

	start := time.Now()
	err := s.handle(ctx, msg)
	elapsed := time.Since(start)

	observeResponse(cmd, elapsed, err != nil)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return err
}

func (s *Service) handle(ctx context.Context, msg Message) error {
	resp, err := s.handler.HandleMessage(ctx, msg.Text, msg.user())
	if err != nil {
		_ = s.tgClient.SendMessage(errorPrefix+resp, msg.UserID)
		return err
	}
	return s.tgClient.SendMessage(resp, msg.UserID)
}
