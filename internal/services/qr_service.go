package services

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"strings"

	"github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

type QROptions struct {
	Content string
	Size    int
	FgColor string // hex, e.g. "#000000"
	BgColor string
}

// QRService renders the share link of a project as a QR code.
type QRService struct {
	clientURL string
}

func NewQRService(clientURL string) *QRService {
	return &QRService{clientURL: strings.TrimRight(clientURL, "/")}
}

// ShareURL is the client route that opens a project by id.
func (s *QRService) ShareURL(projectID string) string {
	return s.clientURL + "/project/" + projectID
}

func (s *QRService) ProjectPNG(projectID string, size int, fg, bg string) ([]byte, error) {
	return s.GenerateQRCode(QROptions{Content: s.ShareURL(projectID), Size: size, FgColor: fg, BgColor: bg})
}

func (s *QRService) ProjectSVG(projectID string, fg, bg string) (string, error) {
	return s.GenerateQRCodeSVG(QROptions{Content: s.ShareURL(projectID), FgColor: fg, BgColor: bg})
}

func (s *QRService) GenerateQRCode(opts QROptions) ([]byte, error) {
	qr, err := qrcode.New(opts.Content, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	if opts.Size <= 0 {
		opts.Size = defaultQRSize
	}

	qr.ForegroundColor = s.parseHexColor(opts.FgColor, color.Black)
	qr.BackgroundColor = s.parseHexColor(opts.BgColor, color.White)

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(opts.Size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *QRService) GenerateQRCodeSVG(opts QROptions) (string, error) {
	qr, err := qrcode.New(opts.Content, qrcode.Medium)
	if err != nil {
		return "", err
	}
	fg := hexOr(opts.FgColor, "#000000")
	bg := hexOr(opts.BgColor, "#FFFFFF")

	qr.DisableBorder = true
	bitmap := qr.Bitmap()
	size := len(bitmap)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" shape-rendering="crispEdges">`, size, size)
	fmt.Fprintf(&sb, `<rect width="100%%" height="100%%" fill="%s"/>`, bg)
	fmt.Fprintf(&sb, `<path fill="%s" d="`, fg)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if bitmap[y][x] {
				fmt.Fprintf(&sb, "M%d %dh1v1h-1z ", x, y)
			}
		}
	}
	sb.WriteString(`"/></svg>`)
	return sb.String(), nil
}

func (s *QRService) parseHexColor(hex string, fallback color.Color) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.TrimPrefix(hex, "#"), "%02x%02x%02x", &r, &g, &b); err != nil || len(hex) != 7 {
		return fallback
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// hexOr keeps user supplied colours out of the SVG markup unless they are
// plain #rrggbb values.
func hexOr(hex, fallback string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return fallback
	}
	for _, c := range hex[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return fallback
		}
	}
	return hex
}
