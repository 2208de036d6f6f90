package render

import (
	"image"
	"image/color"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 256

// GenerateQRCodeImage returns a QR code image for payload drawn with the
// given module colors. An empty payload yields (nil, nil).
func GenerateQRCodeImage(payload string, sizePx int, dark, light color.Color) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}

	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	if dark != nil {
		qrCode.ForegroundColor = dark
	}
	if light != nil {
		qrCode.BackgroundColor = light
	}

	return qrCode.Image(sizePx), nil
}
