package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/simka/internal/domain"
	"github.com/fsdevblog/simka/internal/telegram"
	"github.com/sirupsen/logrus"
)

// TelegramNotifier шлет юзеру итог заказа в личку бота. Best-effort:
// недоставленное уведомление логируется и не влияет на заказ.
type TelegramNotifier struct {
	bot        *telegram.Client
	webAppBase string
	l          *logrus.Entry
}

func NewTelegramNotifier(bot *telegram.Client, webAppBase string, l *logrus.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		bot:        bot,
		webAppBase: webAppBase,
		l:          l.WithField("component", "notifier"),
	}
}

func (n *TelegramNotifier) NotifySuccess(ctx context.Context, user domain.User, order domain.Order) {
	msg := telegram.Message{
		ChatID: user.TelegramID,
		Text: fmt.Sprintf(
			"✅ Заказ №%d выполнен!\n\nICCID: %s\nКод активации: %s\n\nQR-код для установки доступен в приложении.",
			order.ID, order.ICCID, order.ActivationCode,
		),
		ReplyMarkup: &telegram.InlineKeyboardMarkup{
			InlineKeyboard: [][]telegram.InlineKeyboardButton{{
				{Text: "Открыть заказ", URL: fmt.Sprintf("%s/orders/%d", n.webAppBase, order.ID)},
			}},
		},
	}
	n.send(ctx, msg, order.ID)
}

func (n *TelegramNotifier) NotifyFailure(ctx context.Context, user domain.User, order domain.Order) {
	msg := telegram.Message{
		ChatID: user.TelegramID,
		Text: fmt.Sprintf(
			"❌ Заказ №%d не удалось выполнить.\n\nОплата зафиксирована, поддержка свяжется с вами для возврата.",
			order.ID,
		),
	}
	n.send(ctx, msg, order.ID)
}

func (n *TelegramNotifier) send(ctx context.Context, msg telegram.Message, orderID int64) {
	if sendErr := n.bot.SendMessage(ctx, msg); sendErr != nil {
		n.l.WithError(sendErr).WithField("orderID", orderID).Warn("telegram notification failed")
	}
}

// NoopNotifier для окружений без бота (тесты, локальная разработка).
type NoopNotifier struct{}

func (NoopNotifier) NotifySuccess(_ context.Context, _ domain.User, _ domain.Order) {}
func (NoopNotifier) NotifyFailure(_ context.Context, _ domain.User, _ domain.Order) {}
