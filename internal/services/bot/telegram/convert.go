package telegram

import (
	dom "aurbot/internal/services/bot/domain"

	tele "gopkg.in/telebot.v3"
)

// placeholderID is the fixed result id for informational rows; the
// platform keys caching on the query text, so a shared id is fine
const placeholderID = "aurbot-placeholder"

// switchPMParam is echoed back as the /start payload when the user
// taps the prompt
const switchPMParam = "start"

// toQueryResponse converts a domain batch into the platform answer.
// Pure; suppressed batches never reach this point
func toQueryResponse(b dom.Batch) *tele.QueryResponse {
	resp := &tele.QueryResponse{
		Results:    tele.Results{},
		CacheTime:  b.CacheSeconds,
		NextOffset: b.NextOffset,
	}

	if p := b.Placeholder; p != nil {
		if p.Kind == dom.PlaceholderPrompt {
			// no rows at all, just the switch-PM prompt above the input
			resp.SwitchPMText = p.Title
			resp.SwitchPMParameter = switchPMParam
			return resp
		}
		art := &tele.ArticleResult{
			Title:       p.Title,
			Description: p.Body,
		}
		art.SetResultID(placeholderID)
		art.SetContent(&tele.InputTextMessageContent{Text: placeholderText(p)})
		resp.Results = tele.Results{art}
		return resp
	}

	results := make(tele.Results, 0, len(b.Entries))
	for _, e := range b.Entries {
		art := &tele.ArticleResult{
			Title:       e.Title,
			Description: e.Description,
			URL:         e.URL,
			HideURL:     true,
		}
		art.SetResultID(e.ID)
		art.SetContent(&tele.InputTextMessageContent{
			Text:           e.Text,
			ParseMode:      tele.ModeHTML,
			DisablePreview: true,
		})
		results = append(results, art)
	}
	resp.Results = results
	return resp
}

// placeholderText is what gets sent if the user actually picks the
// informational row
func placeholderText(p *dom.Placeholder) string {
	if p.Body != "" {
		return p.Body
	}
	return p.Title
}
