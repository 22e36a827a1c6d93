package badge

import (
	"bytes"
	"fmt"
	"text/template"
	"unicode/utf8"
)

type IRenderer interface {
	Render(subject string, status string, color string) ([]byte, error)
}

const (
	charWidth      = 7
	segmentPadding = 10
	badgeHeight    = 20
)

const flatTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" role="img" aria-label="{{html .Subject}}: {{html .Status}}">
<title>{{html .Subject}}: {{html .Status}}</title>
<linearGradient id="s" x2="0" y2="100%"><stop offset="0" stop-color="#bbb" stop-opacity=".1"/><stop offset="1" stop-opacity=".1"/></linearGradient>
<clipPath id="r"><rect width="{{.Width}}" height="{{.Height}}" rx="3" fill="#fff"/></clipPath>
<g clip-path="url(#r)">
<rect width="{{.SubjectWidth}}" height="{{.Height}}" fill="#555"/>
<rect x="{{.SubjectWidth}}" width="{{.StatusWidth}}" height="{{.Height}}" fill="{{html .Color}}"/>
<rect width="{{.Width}}" height="{{.Height}}" fill="url(#s)"/>
</g>
<g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" font-size="11">
<text x="{{.SubjectX}}" y="14">{{html .Subject}}</text>
<text x="{{.StatusX}}" y="14">{{html .Status}}</text>
</g>
</svg>
`

type flatBadge struct {
	Subject      string
	Status       string
	Color        string
	Height       int
	Width        int
	SubjectWidth int
	StatusWidth  int
	SubjectX     float64
	StatusX      float64
}

// FlatRenderer draws a two segment badge. Text width is estimated from the rune count.
type FlatRenderer struct {
	tmpl *template.Template
}

var _ IRenderer = (*FlatRenderer)(nil)

func NewFlatRenderer() *FlatRenderer {
	return &FlatRenderer{tmpl: template.Must(template.New("badge").Parse(flatTemplate))}
}

func (r *FlatRenderer) Render(subject string, status string, color string) ([]byte, error) {
	data := flatBadge{
		Subject:      subject,
		Status:       status,
		Color:        color,
		Height:       badgeHeight,
		SubjectWidth: textWidth(subject),
		StatusWidth:  textWidth(status),
	}
	data.Width = data.SubjectWidth + data.StatusWidth
	data.SubjectX = float64(data.SubjectWidth) / 2
	data.StatusX = float64(data.SubjectWidth) + float64(data.StatusWidth)/2

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render badge: %w", err)
	}
	return buf.Bytes(), nil
}

func textWidth(text string) int {
	return utf8.RuneCountInString(text)*charWidth + segmentPadding
}
