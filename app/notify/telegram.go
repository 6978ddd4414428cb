package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"blogwatch/app/article"
)

const defaultAPIBaseURL = "https://api.telegram.org"

// Notifier delivers scan results to a Telegram chat through the Bot
// API. Delivery failure is a run failure: the whole point of a run is
// the notification.
type Notifier struct {
	httpClient *http.Client
	baseURL    string
	token      string
	chatID     string
}

func NewNotifier(token, chatID string) *Notifier {
	return &Notifier{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultAPIBaseURL,
		token:      token,
		chatID:     chatID,
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

// Send formats the article list and delivers it. An empty list is a
// no-op: a quiet day does not produce a message.
func (n *Notifier) Send(ctx context.Context, articles []article.Article) error {
	if len(articles) == 0 {
		return nil
	}
	return n.SendMessage(ctx, FormatMessage(articles))
}

func (n *Notifier) SendMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    n.chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	var r apiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&r); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !r.OK {
		return fmt.Errorf("sendMessage failed: status %d: %s", resp.StatusCode, r.Description)
	}

	slog.Info("Notification sent", "chat_id", n.chatID, "length", len(text))

	return nil
}

// FormatMessage renders the article list as the Markdown message body.
func FormatMessage(articles []article.Article) string {
	lines := make([]string, 0, len(articles)+1)
	lines = append(lines, fmt.Sprintf("Found %d new article(s):", len(articles)))
	for _, a := range articles {
		lines = append(lines, fmt.Sprintf("- [%s](%s) (%s, %s)", a.Title, a.URL, a.Source, a.Published))
	}
	return strings.Join(lines, "\n")
}

// Chat is one chat seen in the bot's pending updates.
type Chat struct {
	ID       int64
	Type     string
	Title    string
	Username string
}

type getUpdatesResponse struct {
	OK     bool `json:"ok"`
	Result []struct {
		Message *struct {
			Chat struct {
				ID       int64  `json:"id"`
				Type     string `json:"type"`
				Title    string `json:"title"`
				Username string `json:"username"`
			} `json:"chat"`
		} `json:"message"`
	} `json:"result"`
}

// GetChatIDs lists the chats the bot has pending updates from, for
// discovering the chat ID to configure. Send the bot a message first
// if the list comes back empty.
func (n *Notifier) GetChatIDs(ctx context.Context) ([]Chat, error) {
	url := fmt.Sprintf("%s/bot%s/getUpdates", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updates: %w", err)
	}
	defer resp.Body.Close()

	var r getUpdatesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !r.OK {
		return nil, fmt.Errorf("getUpdates failed: status %d", resp.StatusCode)
	}

	seen := make(map[int64]bool)
	var chats []Chat
	for _, update := range r.Result {
		if update.Message == nil || seen[update.Message.Chat.ID] {
			continue
		}
		seen[update.Message.Chat.ID] = true
		chats = append(chats, Chat{
			ID:       update.Message.Chat.ID,
			Type:     update.Message.Chat.Type,
			Title:    update.Message.Chat.Title,
			Username: update.Message.Chat.Username,
		})
	}

	return chats, nil
}
