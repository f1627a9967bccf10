package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/vendora/internal/metrics"
	"github.com/example/vendora/internal/models"
)

// ErrInvalidSignature is returned when a gateway callback fails HMAC
// verification.
var ErrInvalidSignature = errors.New("invalid payment signature")

// PaymentService talks to the Razorpay-compatible gateway and reconciles
// gateway state into order payment status.
type PaymentService struct {
	db        *gorm.DB
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewPaymentService(db *gorm.DB, keyID, keySecret, baseURL string) *PaymentService {
	return &PaymentService{
		db:        db,
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// GatewayOrder is the gateway-side order handle handed to the client for the
// payment widget.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateGatewayOrder registers a payment intent with the gateway. Amounts are
// sent in minor units (paise).
func (s *PaymentService) CreateGatewayOrder(amount float64, currency, receipt string) (*GatewayOrder, error) {
	payload := map[string]any{
		"amount":          int64(Round2(amount) * 100),
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(s.keyID, s.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, respBody)
	}

	var gatewayOrder GatewayOrder
	if err := json.Unmarshal(respBody, &gatewayOrder); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	return &gatewayOrder, nil
}

// VerifySignature checks the gateway callback signature: HMAC-SHA256 over
// "<order_id>|<payment_id>" with the key secret, compared in constant time.
func (s *PaymentService) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	fmt.Fprintf(mac, "%s|%s", gatewayOrderID, gatewayPaymentID)
	expected := hex.EncodeToString(mac.Sum(nil))

	ok := hmac.Equal([]byte(expected), []byte(signature))
	metrics.ObservePaymentVerification(ok)
	return ok
}

// ConfirmPayment verifies the signature and records the completed payment
// against the order, marking it paid and confirmed.
func (s *PaymentService) ConfirmPayment(orderID uuid.UUID, gatewayOrderID, gatewayPaymentID, signature string) (*models.Payment, error) {
	if !s.VerifySignature(gatewayOrderID, gatewayPaymentID, signature) {
		return nil, ErrInvalidSignature
	}

	var payment *models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		record := models.Payment{
			OrderID:       order.ID,
			PaymentID:     gatewayPaymentID,
			PaymentMethod: "razorpay",
			Amount:        order.TotalAmount,
			Status:        models.PaymentCompleted,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		updates := map[string]any{
			"payment_status":     models.PaymentCompleted,
			"gateway_order_id":   gatewayOrderID,
			"gateway_payment_id": gatewayPaymentID,
		}
		if order.Status == models.OrderPending {
			updates["status"] = models.OrderConfirmed
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}

		payment = &record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// Refund marks a completed payment refunded and flips the order to REFUNDED.
func (s *PaymentService) Refund(gatewayPaymentID, reason string) (*models.Payment, error) {
	var refunded *models.Payment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, "payment_id = ?", gatewayPaymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if err := tx.Model(&payment).Updates(map[string]any{
			"status":         models.PaymentRefunded,
			"failure_reason": reason,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", payment.OrderID).Updates(map[string]any{
			"payment_status": models.PaymentRefunded,
			"status":         models.OrderRefunded,
		}).Error; err != nil {
			return err
		}

		payment.Status = models.PaymentRefunded
		refunded = &payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refunded, nil
}
