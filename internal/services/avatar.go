package services

import (
	"bytes"
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

// AvatarService renders the fallback initials avatar stored on the employee
// profile. Rendering is pure CPU work; persistence is the caller's problem.
type AvatarService interface {
	Generate(employeeName, colorHex string) ([]byte, error)
	PickColor() string
	BuildProfile(employee *types.Employee, designation string) (*types.EmployeeProfile, error)
}

type avatarService struct {
	log      *logger.Logger
	palette  []string
	colorBy  map[string]color.NRGBA
	fontFace font.Face
}

// Default background palette, used when the profile has no stored color.
var defaultPalette = map[string]color.NRGBA{
	"#1F6FEB": {R: 0x1F, G: 0x6F, B: 0xEB, A: 0xFF},
	"#2DA44E": {R: 0x2D, G: 0xA4, B: 0x4E, A: 0xFF},
	"#BF3989": {R: 0xBF, G: 0x39, B: 0x89, A: 0xFF},
	"#8250DF": {R: 0x82, G: 0x50, B: 0xDF, A: 0xFF},
	"#CF222E": {R: 0xCF, G: 0x22, B: 0x2E, A: 0xFF},
	"#9A6700": {R: 0x9A, G: 0x67, B: 0x00, A: 0xFF},
}

func NewAvatarService(log *logger.Logger) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	fontPath := strings.TrimSpace(os.Getenv("AVATAR_FONT"))
	if fontPath == "" {
		return nil, fmt.Errorf("env var AVATAR_FONT is empty")
	}
	serviceLog.Info("Loading avatar font", "font", fontPath)

	face, err := loadFontFace(fontPath, 206)
	if err != nil {
		return nil, fmt.Errorf("could not load avatar font: %w", err)
	}

	palette := make([]string, 0, len(defaultPalette))
	for hex := range defaultPalette {
		palette = append(palette, hex)
	}

	return &avatarService{
		log:      serviceLog,
		palette:  palette,
		colorBy:  defaultPalette,
		fontFace: face,
	}, nil
}

func (as *avatarService) PickColor() string {
	return as.palette[rand.Intn(len(as.palette))]
}

// Generate renders a 512px circular PNG with the employee's initials.
func (as *avatarService) Generate(employeeName, colorHex string) ([]byte, error) {
	const size = 512

	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	base, ok := as.colorBy[strings.ToUpper(strings.TrimSpace(colorHex))]
	if !ok {
		base = as.colorBy[as.palette[0]]
	}
	dc.SetColor(base)
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initials := computeInitials(employeeName)

	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(size)/2, float64(size)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode avatar png: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildProfile assembles a fresh profile row with a rendered avatar.
func (as *avatarService) BuildProfile(employee *types.Employee, designation string) (*types.EmployeeProfile, error) {
	colorHex := as.PickColor()
	png, err := as.Generate(employee.EmployeeName, colorHex)
	if err != nil {
		return nil, err
	}
	return &types.EmployeeProfile{
		EmployeeID:  employee.EmployeeID,
		Designation: designation,
		AvatarColor: colorHex,
		AvatarPNG:   png,
	}, nil
}

func computeInitials(name string) string {
	parts := strings.Fields(strings.TrimSpace(name))
	switch len(parts) {
	case 0:
		return "?"
	case 1:
		return strings.ToUpper(firstRune(parts[0]))
	default:
		return strings.ToUpper(firstRune(parts[0]) + firstRune(parts[len(parts)-1]))
	}
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

func loadFontFace(path string, points float64) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed, err := truetype.Parse(raw)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(parsed, &truetype.Options{Size: points}), nil
}
