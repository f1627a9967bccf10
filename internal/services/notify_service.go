package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/example/vendora/internal/models"
)

// NotifyService pushes order events to the admin Telegram chat. Delivery is
// best effort: failures are logged and never block the order flow.
type NotifyService struct {
	botToken    string
	adminChatID string
	client      *http.Client
}

func NewNotifyService(botToken, adminChatID string) *NotifyService {
	return &NotifyService{
		botToken:    botToken,
		adminChatID: adminChatID,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

func (s *NotifyService) send(text string) error {
	if s.botToken == "" || s.adminChatID == "" {
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	body, err := json.Marshal(telegramMessage{
		ChatID:    s.adminChatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return err
	}

	resp, err := s.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}
	return nil
}

// NotifyNewOrder sends an order summary to the admin chat.
func (s *NotifyService) NotifyNewOrder(order *models.Order) {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>New order %s</b>\n", order.OrderNumber)
	if order.CustomerName != "" {
		fmt.Fprintf(&b, "Customer: %s\n", order.CustomerName)
	}
	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %s x %d - %.2f\n", item.ProductName, item.Quantity, item.TotalPrice)
	}
	fmt.Fprintf(&b, "Total: %.2f (%s)", order.TotalAmount, order.PaymentMethod)

	if err := s.send(b.String()); err != nil {
		log.Printf("[Notify] order notification failed: %v", err)
	}
}
