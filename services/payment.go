package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hotelcore/config"
)

// PaymentProvider xác minh một mã tham chiếu thanh toán với cổng thanh toán
type PaymentProvider interface {
	Verify(ctx context.Context, paymentRef string) (bool, error)
}

// HTTPPaymentProvider gọi cổng thanh toán qua HTTP
type HTTPPaymentProvider struct {
	verifyURL string
	client    *http.Client
}

// NewHTTPPaymentProvider tạo provider từ biến môi trường PAYMENT_VERIFY_URL
func NewHTTPPaymentProvider() *HTTPPaymentProvider {
	return &HTTPPaymentProvider{
		verifyURL: config.GetEnv("PAYMENT_VERIFY_URL"),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type verifyRequest struct {
	PaymentRef string `json:"paymentRef"`
}

type verifyResponse struct {
	Confirmed bool `json:"confirmed"`
}

// Verify hỏi cổng thanh toán xem mã tham chiếu đã được capture chưa
func (p *HTTPPaymentProvider) Verify(ctx context.Context, paymentRef string) (bool, error) {
	if p.verifyURL == "" {
		// Không cấu hình cổng thanh toán thì tin mã ref do caller đưa
		return true, nil
	}

	body, err := json.Marshal(verifyRequest{PaymentRef: paymentRef})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.verifyURL, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("cổng thanh toán trả về status %d", resp.StatusCode)
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, err
	}
	return result.Confirmed, nil
}

// StaticPaymentProvider luôn trả về một kết quả cố định, dùng cho test
type StaticPaymentProvider struct {
	Confirmed bool
	Err       error
}

func (p *StaticPaymentProvider) Verify(ctx context.Context, paymentRef string) (bool, error) {
	return p.Confirmed, p.Err
}
