package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pulsecheck-dev/pulsecheck/internal/models"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	ColorRed   = 16711680 // #FF0000 - incident opened
	ColorGreen = 65280    // #00FF00 - incident resolved

	Username = "Pulsecheck Monitor"
)

// Notifier posts incident transitions to Discord and/or Slack incoming
// webhooks. Either URL may be empty; an all-empty notifier is a no-op.
type Notifier struct {
	discordWebhook string
	slackWebhook   string
	client         *http.Client
}

func New(discordWebhook, slackWebhook string) *Notifier {
	return &Notifier{
		discordWebhook: discordWebhook,
		slackWebhook:   slackWebhook,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (n *Notifier) IncidentOpened(service models.Service, incident models.Incident) error {
	if n.discordWebhook != "" {
		payload := DiscordWebhookRequest{
			Username: Username,
			Embeds: []DiscordEmbed{
				{
					Title:       "🚨 **INCIDENT DETECTED**",
					Description: incident.Description,
					Color:       ColorRed,
					Fields: []DiscordWebhookField{
						{Name: "Service", Value: service.Name, Inline: true},
						{Name: "Type", Value: service.Type, Inline: true},
						{Name: "Status", Value: "**" + incident.Status + "**", Inline: true},
						{Name: "Incident", Value: incident.Title, Inline: false},
						{Name: "Started At", Value: incident.StartedAt.Format("2006-01-02 15:04:05 UTC"), Inline: true},
					},
					Timestamp: time.Now().Format(time.RFC3339),
				},
			},
		}

		if err := n.post(n.discordWebhook, payload); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	if n.slackWebhook != "" {
		payload := SlackWebhookRequest{
			Username:  Username,
			IconEmoji: ":rotating_light:",
			Text:      ":rotating_light: *INCIDENT DETECTED*",
			Attachments: []SlackAttachment{
				{
					Color: "danger",
					Title: incident.Title,
					Text:  incident.Description,
					Fields: []SlackField{
						{Title: "Service", Value: service.Name, Short: true},
						{Title: "Type", Value: service.Type, Short: true},
						{Title: "Status", Value: incident.Status, Short: true},
						{Title: "Started At", Value: incident.StartedAt.Format("2006-01-02 15:04:05 UTC"), Short: false},
					},
					Timestamp: time.Now().Unix(),
				},
			},
		}

		if err := n.post(n.slackWebhook, payload); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	return nil
}

func (n *Notifier) IncidentResolved(service models.Service, incident models.Incident) error {
	resolvedAt := "Unknown"
	duration := "Unknown"

	if incident.ResolvedAt != nil {
		resolvedAt = incident.ResolvedAt.Format("2006-01-02 15:04:05 UTC")
		duration = incident.ResolvedAt.Sub(incident.StartedAt).Round(time.Second).String()
	}

	if n.discordWebhook != "" {
		payload := DiscordWebhookRequest{
			Username: Username,
			Embeds: []DiscordEmbed{
				{
					Title:       "✅ **INCIDENT RESOLVED**",
					Description: fmt.Sprintf("**%s** is back to normal operation.", service.Name),
					Color:       ColorGreen,
					Fields: []DiscordWebhookField{
						{Name: "Service", Value: service.Name, Inline: true},
						{Name: "Incident", Value: incident.Title, Inline: false},
						{Name: "Started At", Value: incident.StartedAt.Format("2006-01-02 15:04:05 UTC"), Inline: true},
						{Name: "Resolved At", Value: resolvedAt, Inline: true},
						{Name: "Duration", Value: duration, Inline: true},
					},
					Timestamp: time.Now().Format(time.RFC3339),
				},
			},
		}

		if err := n.post(n.discordWebhook, payload); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	if n.slackWebhook != "" {
		payload := SlackWebhookRequest{
			Username:  Username,
			IconEmoji: ":white_check_mark:",
			Text:      ":white_check_mark: *INCIDENT RESOLVED*",
			Attachments: []SlackAttachment{
				{
					Color: "good",
					Title: fmt.Sprintf("%s is back to normal operation", service.Name),
					Text:  "The incident has been resolved and the service is functioning normally.",
					Fields: []SlackField{
						{Title: "Service", Value: service.Name, Short: true},
						{Title: "Duration", Value: duration, Short: true},
						{Title: "Resolved At", Value: resolvedAt, Short: false},
					},
					Timestamp: time.Now().Unix(),
				},
			},
		}

		if err := n.post(n.slackWebhook, payload); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	return nil
}

func (n *Notifier) post(webhookURL string, payload interface{}) error {
	body, err := json.Marshal(payload)

	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	resp, err := n.client.Post(webhookURL, "application/json", bytes.NewBuffer(body))

	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
