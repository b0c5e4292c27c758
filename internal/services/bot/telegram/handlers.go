package telegram

import (
	"context"

	"aurbot/internal/platform/logger"
	dom "aurbot/internal/services/bot/domain"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v3"
)

const startMessage = "This bot searches packages in the " +
	"<a href=\"https://aur.archlinux.org/\">Arch User Repository</a> " +
	"and works in inline mode: mention it in any chat and start typing.\n\n" +
	"Supported search patterns:\n" +
	"- <code>term</code> searches packages by name\n" +
	"- <code>!m term</code> searches packages by maintainer"

const helpMessage = "Commands:\n" +
	"/start - what this bot does and how to search\n" +
	"/help - this text\n\n" +
	"Inline usage: @<botname> <term> or @<botname> !m <maintainer>"

// onQuery adapts one inline query into a domain event, runs the
// pipeline, and answers. Suppressed batches answer nothing so the
// platform keeps whatever it already shows
func (r *Runner) onQuery(c tele.Context) error {
	q := c.Query()
	if q == nil {
		return nil
	}

	ev := dom.InlineEvent{
		QueryID: q.ID,
		Text:    q.Text,
		Offset:  q.Offset,
		At:      r.now(),
	}
	if q.Sender != nil {
		ev.RequesterID = q.Sender.ID
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.opts.HandleBudget)
	defer cancel()
	ctx = logger.WithEvent(ctx, uuid.NewString(), ev.RequesterID)

	batch := r.handler.HandleInline(ctx, ev)
	if batch.Suppressed {
		return nil
	}
	return c.Answer(toQueryResponse(batch))
}

// onStart sends the intro with switch-inline buttons prefilled for
// both search patterns
func (r *Runner) onStart(c tele.Context) error {
	markup := &tele.ReplyMarkup{
		InlineKeyboard: [][]tele.InlineButton{{
			{Text: "Search packages", InlineQueryChat: ""},
			{Text: "Search by maintainer", InlineQueryChat: "!m "},
		}},
	}
	return c.Send(startMessage, &tele.SendOptions{
		ParseMode:             tele.ModeHTML,
		DisableWebPagePreview: true,
		ReplyMarkup:           markup,
	})
}

func (r *Runner) onHelp(c tele.Context) error {
	return c.Send(helpMessage)
}
