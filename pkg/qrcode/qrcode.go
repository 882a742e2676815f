package qrcode

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// QRService etkinlik paylaşım linki ve ödeme linkleri için QR kod üretir
type QRService struct {
	baseURL string // örn: "https://gather.example.com/events/"
}

func NewQRService(baseURL string) *QRService {
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &QRService{
		baseURL: baseURL,
	}
}

// EventShareURL davet linki
func (s *QRService) EventShareURL(eventID string) string {
	return s.baseURL + eventID
}

// GenerateEventQRCode davet linkini PNG QR kod olarak döndürür
func (s *QRService) GenerateEventQRCode(eventID string, size int) ([]byte, error) {
	return s.Encode(s.EventShareURL(eventID), size)
}

func (s *QRService) Encode(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}
	return png, nil
}

// EncodeDataURL ödeme linkini etkinlik kaydına gömülebilecek bir data URL'e çevirir
func (s *QRService) EncodeDataURL(content string, size int) (string, error) {
	png, err := s.Encode(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
