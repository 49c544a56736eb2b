package library

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dharmalog/dharmalog/internal/cards"
	"github.com/dharmalog/dharmalog/internal/cli"
	apperrors "github.com/dharmalog/dharmalog/internal/errors"
	"github.com/dharmalog/dharmalog/internal/models"
	"github.com/dharmalog/dharmalog/internal/sharing"
)

type CardCmd struct {
	Create CardCreateCmd `cmd:"" help:"Create a quote card from a teaching."`
	List   CardListCmd   `cmd:"" help:"List cards."`
	Share  CardShareCmd  `cmd:"" help:"Share a card as text."`
	Delete CardDeleteCmd `cmd:"" help:"Delete a card."`
}

type CardCreateCmd struct {
	Teaching string `arg:"" help:"Teaching ID or content prefix."`
	Image    string `help:"Frame image name or ID." default:"Plain"`
}

func (c *CardCreateCmd) Run(ctx *cli.Context) error {
	teaching, err := resolveTeaching(ctx, c.Teaching)
	if err != nil {
		return err
	}
	image, err := resolveImage(ctx, c.Image)
	if err != nil {
		return err
	}

	card := models.Card{
		ID:        uuid.New().String(),
		Text:      teaching.Content,
		Source:    teaching.Source,
		ImageID:   image.ID,
		CreatedAt: time.Now(),
	}
	if err := card.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddCard(card); err != nil {
		return err
	}

	fmt.Println(cards.Render(card, image))
	return nil
}

type CardListCmd struct{}

func (c *CardListCmd) Run(ctx *cli.Context) error {
	all, err := ctx.Store.GetAllCards()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No cards found. Create one with 'dharmalog card create'.")
		return nil
	}
	for _, card := range all {
		text := card.Text
		if len(text) > 60 {
			text = text[:57] + "..."
		}
		fmt.Printf("%s  %s\n", card.ID, text)
	}
	return nil
}

type CardShareCmd struct {
	Card string `arg:"" help:"Card ID or text prefix."`
	Yes  bool   `help:"Skip the confirmation prompt."`
}

func (c *CardShareCmd) Run(ctx *cli.Context) error {
	card, err := resolveCard(ctx, c.Card)
	if err != nil {
		return err
	}

	image, err := ctx.Store.GetImage(card.ImageID)
	if err == nil {
		fmt.Println(cards.Render(card, image))
	}

	result, err := sharing.Share(ctx.Store.GetConfigPath(), sharing.Options{
		Title:   "teaching card",
		Message: cards.ShareText(card),
		Yes:     c.Yes || ctx.Yes,
	})
	if err != nil {
		return err
	}
	if result.Dismissed {
		fmt.Println("Share dismissed.")
		return nil
	}
	fmt.Printf("Card written to %s\n", result.Path)
	return nil
}

type CardDeleteCmd struct {
	Card string `arg:"" help:"Card ID or text prefix."`
}

func (c *CardDeleteCmd) Run(ctx *cli.Context) error {
	card, err := resolveCard(ctx, c.Card)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteCard(card.ID); err != nil {
		return err
	}
	fmt.Println("Deleted card.")
	return nil
}

func resolveCard(ctx *cli.Context, ref string) (models.Card, error) {
	if card, err := ctx.Store.GetCard(ref); err == nil {
		return card, nil
	}
	all, err := ctx.Store.GetAllCards()
	if err != nil {
		return models.Card{}, err
	}
	var matches []models.Card
	for _, card := range all {
		if strings.HasPrefix(card.Text, ref) {
			matches = append(matches, card)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Card{}, apperrors.NotFoundf("card %q", ref)
	default:
		return models.Card{}, fmt.Errorf("card %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func resolveImage(ctx *cli.Context, ref string) (models.Image, error) {
	if image, err := ctx.Store.GetImage(ref); err == nil {
		return image, nil
	}
	all, err := ctx.Store.GetAllImages()
	if err != nil {
		return models.Image{}, err
	}
	for _, image := range all {
		if strings.EqualFold(image.Name, ref) {
			return image, nil
		}
	}
	return models.Image{}, apperrors.NotFoundf("image %q", ref)
}
