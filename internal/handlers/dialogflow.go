package handlers

import (
	"strings"

	"leaddizioni/internal/game"
	"leaddizioni/internal/models"
	"leaddizioni/internal/service"
)

// dataContextName is the output context carrying the game state
const dataContextName = "data"

// WebhookRequest is the subset of a Dialogflow v2 fulfillment request we read
type WebhookRequest struct {
	ResponseID  string      `json:"responseId"`
	Session     string      `json:"session"`
	QueryResult QueryResult `json:"queryResult"`
}

type QueryResult struct {
	QueryText    string         `json:"queryText"`
	LanguageCode string         `json:"languageCode"`
	Parameters   map[string]any `json:"parameters"`
	Intent       struct {
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
	} `json:"intent"`
}

// WebhookResponse is a Dialogflow v2 fulfillment response with an Actions on Google payload
type WebhookResponse struct {
	FulfillmentText     string          `json:"fulfillmentText"`
	FulfillmentMessages []Message       `json:"fulfillmentMessages,omitempty"`
	Payload             *Payload        `json:"payload,omitempty"`
	OutputContexts      []OutputContext `json:"outputContexts,omitempty"`
}

type Message struct {
	Text         *TextMessage  `json:"text,omitempty"`
	Card         *CardMessage  `json:"card,omitempty"`
	QuickReplies *QuickReplies `json:"quickReplies,omitempty"`
}

type TextMessage struct {
	Text []string `json:"text"`
}

type CardMessage struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURI string `json:"imageUri,omitempty"`
}

type QuickReplies struct {
	QuickReplies []string `json:"quickReplies"`
}

type Payload struct {
	Google GooglePayload `json:"google"`
}

type GooglePayload struct {
	ExpectUserResponse bool         `json:"expectUserResponse"`
	RichResponse       RichResponse `json:"richResponse"`
}

type RichResponse struct {
	Items       []RichItem   `json:"items"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

type RichItem struct {
	SimpleResponse *SimpleResponse `json:"simpleResponse,omitempty"`
	BasicCard      *BasicCard      `json:"basicCard,omitempty"`
}

type SimpleResponse struct {
	TextToSpeech string `json:"textToSpeech"`
	DisplayText  string `json:"displayText,omitempty"`
}

type BasicCard struct {
	Title         string `json:"title,omitempty"`
	FormattedText string `json:"formattedText,omitempty"`
	Image         *Image `json:"image,omitempty"`
}

type Image struct {
	URL               string `json:"url"`
	AccessibilityText string `json:"accessibilityText"`
}

type Suggestion struct {
	Title string `json:"title"`
}

type OutputContext struct {
	Name          string         `json:"name"`
	LifespanCount int            `json:"lifespanCount"`
	Parameters    map[string]any `json:"parameters,omitempty"`
}

// toTurnRequest maps the fulfillment request onto a game turn
func (req *WebhookRequest) toTurnRequest() service.TurnRequest {
	return service.TurnRequest{
		SessionID:  req.Session,
		IntentName: req.QueryResult.Intent.DisplayName,
		Params:     game.Params(req.QueryResult.Parameters),
	}
}

// newWebhookResponse renders a turn result for Dialogflow and Actions on Google
func newWebhookResponse(session string, result *service.TurnResult) *WebhookResponse {
	reply := result.Response

	out := &WebhookResponse{
		FulfillmentText: reply.DisplayText,
		FulfillmentMessages: []Message{
			{Text: &TextMessage{Text: []string{reply.DisplayText}}},
		},
	}

	google := GooglePayload{
		ExpectUserResponse: !reply.Terminal,
		RichResponse: RichResponse{
			Items: []RichItem{{SimpleResponse: &SimpleResponse{
				TextToSpeech: reply.Speech,
				DisplayText:  reply.DisplayText,
			}}},
		},
	}

	if reply.Card != nil {
		out.FulfillmentMessages = append(out.FulfillmentMessages, Message{Card: &CardMessage{
			Title:    reply.Card.Title,
			Subtitle: reply.Card.Text,
			ImageURI: reply.Card.ImageURL,
		}})
		card := &BasicCard{Title: reply.Card.Title, FormattedText: reply.Card.Text}
		if reply.Card.ImageURL != "" {
			card.Image = &Image{URL: reply.Card.ImageURL, AccessibilityText: reply.Card.Title}
		}
		google.RichResponse.Items = append(google.RichResponse.Items, RichItem{BasicCard: card})
	}

	if len(reply.Suggestions) > 0 {
		out.FulfillmentMessages = append(out.FulfillmentMessages, Message{
			QuickReplies: &QuickReplies{QuickReplies: reply.Suggestions},
		})
		for _, s := range reply.Suggestions {
			google.RichResponse.Suggestions = append(google.RichResponse.Suggestions, Suggestion{Title: s})
		}
	}
	out.Payload = &Payload{Google: google}

	contextName := strings.TrimSuffix(session, "/") + "/contexts/" + dataContextName
	switch {
	case reply.Terminal:
		out.OutputContexts = []OutputContext{{Name: contextName, LifespanCount: 0}}
	case result.State != nil:
		out.OutputContexts = []OutputContext{{
			Name:          contextName,
			LifespanCount: result.Lifespan,
			Parameters:    stateParameters(result.State),
		}}
	}
	return out
}

func stateParameters(s *models.SessionState) map[string]any {
	return map[string]any{
		"level":          string(s.Level),
		"firstAddend":    s.FirstAddend,
		"secondAddend":   s.SecondAddend,
		"correctGuesses": s.CorrectGuesses,
		"totalGuesses":   s.TotalGuesses,
		"firstAttempt":   s.FirstAttempt,
		"misunderstood":  s.Misunderstood,
	}
}
