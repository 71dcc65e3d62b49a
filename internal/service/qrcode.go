package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// TrackingQRGenerator encodes the public order tracking URL as a PNG.
type TrackingQRGenerator struct {
	BaseURL string
}

func (g TrackingQRGenerator) Generate(orderID int) ([]byte, error) {
	qrData := fmt.Sprintf("%s/orders/%d", g.BaseURL, orderID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}

var _ QRGenerator = TrackingQRGenerator{}
