package bot

import (
	"context"
	"fmt"
	"testing"
	"time"

	tgmodels "github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/bot/mocks"
	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/config"
	"github.com/BulGhost/exchangeRatesOnDate-TelegramBot/internal/exchange"
)

// stubExchanger returns a fixed rate or error and records calls.
type stubExchanger struct {
	rate decimal.Decimal
	err  error

	calls     int
	gotBase   string
	gotTarget string
	gotDate   time.Time
}

func (s *stubExchanger) Rate(_ context.Context, base, target string, date time.Time) (decimal.Decimal, error) {
	s.calls++
	s.gotBase = base
	s.gotTarget = target
	s.gotDate = date
	if s.err != nil {
		return decimal.Decimal{}, s.err
	}
	return s.rate, nil
}

func newTestBot(exchanger exchange.Exchanger) *Bot {
	return &Bot{
		cfg:       &config.Config{BaseCurrency: "RUB"},
		exchanger: exchanger,
	}
}

func TestHandleRateQueryCore(t *testing.T) {
	t.Parallel()

	t.Run("answers valid query with formatted inverse rate", func(t *testing.T) {
		t.Parallel()

		stub := &stubExchanger{rate: decimal.RequireFromString("0.01418")}
		b := newTestBot(stub)
		mock := mocks.NewMockBot()

		b.handleRateQueryCore(context.Background(), mock, mocks.MessageUpdate(100, 1, "USD 16.05.2021"))

		require.Equal(t, 1, stub.calls)
		require.Equal(t, "RUB", stub.gotBase)
		require.Equal(t, "USD", stub.gotTarget)
		require.Equal(t, time.Date(2021, time.May, 16, 0, 0, 0, 0, time.UTC), stub.gotDate)

		require.Equal(t, 1, mock.SentMessageCount())
		require.Equal(t, "16.05.2021, 1 USD =  70,52 RUB", mock.LastSentMessage().Text)
	})

	t.Run("sends typing action before answering", func(t *testing.T) {
		t.Parallel()

		stub := &stubExchanger{rate: decimal.RequireFromString("5.217")}
		b := newTestBot(stub)
		mock := mocks.NewMockBot()

		b.handleRateQueryCore(context.Background(), mock, mocks.MessageUpdate(100, 1, "USD 16.05.2021"))

		require.Equal(t, 1, mock.SentChatActionCount())
		require.Equal(t, "16.05.2021, 1 USD =  0,192 RUB", mock.LastSentMessage().Text)
	})

	t.Run("handles edited messages like fresh ones", func(t *testing.T) {
		t.Parallel()

		stub := &stubExchanger{rate: decimal.RequireFromString("0.01418")}
		b := newTestBot(stub)
		mock := mocks.NewMockBot()

		b.handleRateQueryCore(context.Background(), mock, mocks.EditedMessageUpdate(100, 1, "USD 16.05.2021"))

		require.Equal(t, 1, stub.calls)
		require.Equal(t, "16.05.2021, 1 USD =  70,52 RUB", mock.LastSentMessage().Text)
	})

	t.Run("rejects unknown currency with instruction and no network call", func(t *testing.T) {
		t.Parallel()

		stub := &stubExchanger{rate: decimal.RequireFromString("0.01418")}
		b := newTestBot(stub)
		mock := mocks.NewMockBot()

		b.handleRateQueryCore(context.Background(), mock, mocks.MessageUpdate(100, 1, "dollar 03.04.2021"))

		require.Equal(t, 0, stub.calls)
		require.Equal(t, 2, mock.SentMessageCount())
		require.Equal(t, msgUnknownCurrency, mock.SentMessages[0].Text)
		require.Equal(t, msgInstruction, mock.SentMessages[1].Text)
	})

	t.Run("rejects future date with instruction and no network call", func(t *testing.T) {
		t.Parallel()

		stub := &stubExchanger{rate: decimal.RequireFromString("0.01418")}
		b := newTestBot(stub)
		mock := mocks.NewMockBot()

		tomorrow := time.Now().AddDate(0, 0, 1).Format("02.01.2006")
		b.handleRateQueryCore(context.Background(), mock, mocks.MessageUpdate(100, 1, "USD "+tomorrow))

		require.Equal(t, 0, stub.calls)
		require.Equal(t, 2, mock.SentMessageCount())
		require.Equal(t, msgDateInFuture, mock.SentMessages[0].Text)
		require.Equal(t, msgInstruction, mock.SentMessages[1].Text)
	})

	t.Run("rejects non-text message with instruction", func(t *testing.T) {
		t.Parallel()

		updates := map[string]*tgmodels.Update{
			"photo":   mocks.PhotoUpdate(100, 1, "photo-1"),
			"voice":   mocks.NewUpdateBuilder().WithMessage(100, 1, "").WithVoice("voice-1", 5).Build(),
			"sticker": mocks.NewUpdateBuilder().WithMessage(100, 1, "").WithSticker("sticker-1").Build(),
		}

		for name, update := range updates {
			t.Run(name, func(t *testing.T) {
				stub := &stubExchanger{rate: decimal.RequireFromString("0.01418")}
				b := newTestBot(stub)
				mock := mocks.NewMockBot()

				b.handleRateQueryCore(context.Background(), mock, update)

				require.Equal(t, 0, stub.calls)
				require.Equal(t, 2, mock.SentMessageCount())
				require.Equal(t, msgNotText, mock.SentMessages[0].Text)
				require.Equal(t, msgInstruction, mock.SentMessages[1].Text)
			})
		}
	})

	t.Run("no data reply has no instruction", func(t *testing.T) {
		t.Parallel()

		stub := &stubExchanger{err: fmt.Errorf("%w: USD on 16.05.2021", exchange.ErrNoData)}
		b := newTestBot(stub)
		mock := mocks.NewMockBot()

		b.handleRateQueryCore(context.Background(), mock, mocks.MessageUpdate(100, 1, "USD 16.05.2021"))

		require.Equal(t, 1, stub.calls)
		require.Equal(t, 1, mock.SentMessageCount())
		require.Equal(t, msgNoData, mock.LastSentMessage().Text)
	})

	t.Run("transport failure reply has no instruction", func(t *testing.T) {
		t.Parallel()

		stub := &stubExchanger{err: fmt.Errorf("%w: connection refused", exchange.ErrUnavailable)}
		b := newTestBot(stub)
		mock := mocks.NewMockBot()

		b.handleRateQueryCore(context.Background(), mock, mocks.MessageUpdate(100, 1, "USD 16.05.2021"))

		require.Equal(t, 1, stub.calls)
		require.Equal(t, 1, mock.SentMessageCount())
		require.Equal(t, msgServiceUnavailable, mock.LastSentMessage().Text)
	})

	t.Run("unexpected provider error falls back to unavailable text", func(t *testing.T) {
		t.Parallel()

		stub := &stubExchanger{err: fmt.Errorf("boom")}
		b := newTestBot(stub)
		mock := mocks.NewMockBot()

		b.handleRateQueryCore(context.Background(), mock, mocks.MessageUpdate(100, 1, "USD 16.05.2021"))

		require.Equal(t, 1, mock.SentMessageCount())
		require.Equal(t, msgServiceUnavailable, mock.LastSentMessage().Text)
	})

	t.Run("ignores update without message", func(t *testing.T) {
		t.Parallel()

		stub := &stubExchanger{}
		b := newTestBot(stub)
		mock := mocks.NewMockBot()

		b.handleRateQueryCore(context.Background(), mock, mocks.NewUpdateBuilder().Build())

		require.Equal(t, 0, stub.calls)
		require.Equal(t, 0, mock.SentMessageCount())
		require.Equal(t, 0, mock.SentChatActionCount())
	})

	t.Run("keeps answering when sends fail", func(t *testing.T) {
		t.Parallel()

		stub := &stubExchanger{rate: decimal.RequireFromString("0.01418")}
		b := newTestBot(stub)
		mock := mocks.NewMockBot()
		mock.SendMessageError = fmt.Errorf("telegram api down")

		require.NotPanics(t, func() {
			b.handleRateQueryCore(context.Background(), mock, mocks.MessageUpdate(100, 1, "USD 16.05.2021"))
		})
	})
}

func TestSendInstructionCore(t *testing.T) {
	t.Parallel()

	t.Run("replies with the instruction text", func(t *testing.T) {
		t.Parallel()

		b := newTestBot(&stubExchanger{})
		mock := mocks.NewMockBot()

		b.sendInstructionCore(context.Background(), mock, mocks.MessageUpdate(100, 1, "/start"))

		require.Equal(t, 1, mock.SentMessageCount())
		require.Equal(t, msgInstruction, mock.LastSentMessage().Text)
	})

	t.Run("ignores update without message", func(t *testing.T) {
		t.Parallel()

		b := newTestBot(&stubExchanger{})
		mock := mocks.NewMockBot()

		b.sendInstructionCore(context.Background(), mock, mocks.NewUpdateBuilder().Build())

		require.Equal(t, 0, mock.SentMessageCount())
	})
}
