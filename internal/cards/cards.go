// Package cards renders teaching quote cards as framed terminal art.
package cards

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dharmalog/dharmalog/internal/models"
)

const cardWidth = 48

var borders = map[string]lipgloss.Border{
	"rounded": lipgloss.RoundedBorder(),
	"double":  lipgloss.DoubleBorder(),
	"normal":  lipgloss.NormalBorder(),
	"thick":   lipgloss.ThickBorder(),
}

var (
	quoteStyle = lipgloss.NewStyle().
			Width(cardWidth).
			Align(lipgloss.Center).
			Padding(1, 2)

	sourceStyle = lipgloss.NewStyle().
			Width(cardWidth).
			Align(lipgloss.Right).
			Foreground(lipgloss.Color("240")).
			PaddingRight(2).
			PaddingBottom(1).
			Italic(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Render draws the card's text inside the frame named by the image style.
// Unknown styles fall back to the plain frame.
func Render(card models.Card, image models.Image) string {
	border, ok := borders[image.Style]
	if !ok {
		border = lipgloss.NormalBorder()
	}

	frame := lipgloss.NewStyle().Border(border)

	body := quoteStyle.Render(card.Text)
	if card.Source != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, sourceStyle.Render("── "+card.Source))
	}

	out := frame.Render(body)
	if image.Name != "" {
		out += "\n" + nameStyle.Render(image.Name)
	}
	return out
}

// ShareText is the plain-text form of a card for sharing outside the
// terminal.
func ShareText(card models.Card) string {
	source := card.Source
	if source == "" {
		source = "dharmalog"
	}
	return fmt.Sprintf("%s\n\n── %s", strings.TrimSpace(card.Text), source)
}

// TeachingShareText formats a library teaching the same way a card is shared.
func TeachingShareText(teaching models.Teaching) string {
	source := teaching.Source
	if source == "" {
		source = "dharmalog"
	}
	return fmt.Sprintf("%s\n\n── %s", strings.TrimSpace(teaching.Content), source)
}
