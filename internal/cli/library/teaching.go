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

type TeachingCmd struct {
	Add    TeachingAddCmd    `cmd:"" help:"Add a teaching to the library."`
	List   TeachingListCmd   `cmd:"" help:"List teachings."`
	Share  TeachingShareCmd  `cmd:"" help:"Share a teaching as text."`
	Delete TeachingDeleteCmd `cmd:"" help:"Delete a teaching."`
}

type TeachingAddCmd struct {
	Content  string `arg:"" help:"Teaching text."`
	Source   string `help:"Attribution (sutra, teacher, commentary)."`
	Category string `help:"Category tag."`
}

func (c *TeachingAddCmd) Run(ctx *cli.Context) error {
	teaching := models.Teaching{
		ID:        uuid.New().String(),
		Content:   c.Content,
		Source:    c.Source,
		Category:  c.Category,
		CreatedAt: time.Now(),
	}
	if err := teaching.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddTeaching(teaching); err != nil {
		return err
	}
	fmt.Println("Added teaching.")
	return nil
}

type TeachingListCmd struct {
	Category string `help:"Only show teachings in this category."`
}

func (c *TeachingListCmd) Run(ctx *cli.Context) error {
	teachings, err := ctx.Store.GetAllTeachings()
	if err != nil {
		return err
	}

	shown := 0
	for _, t := range teachings {
		if c.Category != "" && t.Category != c.Category {
			continue
		}
		content := t.Content
		if len(content) > 60 {
			content = content[:57] + "..."
		}
		source := t.Source
		if source == "" {
			source = "-"
		}
		fmt.Printf("%s  %-60s  %s\n", t.ID, content, source)
		shown++
	}
	if shown == 0 {
		fmt.Println("No teachings found.")
	}
	return nil
}

type TeachingShareCmd struct {
	Teaching string `arg:"" help:"Teaching ID or content prefix."`
	Yes      bool   `help:"Skip the confirmation prompt."`
}

func (c *TeachingShareCmd) Run(ctx *cli.Context) error {
	teaching, err := resolveTeaching(ctx, c.Teaching)
	if err != nil {
		return err
	}

	result, err := sharing.Share(ctx.Store.GetConfigPath(), sharing.Options{
		Title:   "teaching",
		Message: cards.TeachingShareText(teaching),
		Yes:     c.Yes || ctx.Yes,
	})
	if err != nil {
		return err
	}
	if result.Dismissed {
		fmt.Println("Share dismissed.")
		return nil
	}
	fmt.Printf("Teaching written to %s\n", result.Path)
	return nil
}

type TeachingDeleteCmd struct {
	Teaching string `arg:"" help:"Teaching ID or content prefix."`
}

func (c *TeachingDeleteCmd) Run(ctx *cli.Context) error {
	teaching, err := resolveTeaching(ctx, c.Teaching)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteTeaching(teaching.ID); err != nil {
		return err
	}
	fmt.Println("Deleted teaching.")
	return nil
}

func resolveTeaching(ctx *cli.Context, ref string) (models.Teaching, error) {
	if teaching, err := ctx.Store.GetTeaching(ref); err == nil {
		return teaching, nil
	}
	all, err := ctx.Store.GetAllTeachings()
	if err != nil {
		return models.Teaching{}, err
	}
	var matches []models.Teaching
	for _, t := range all {
		if strings.HasPrefix(t.Content, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Teaching{}, apperrors.NotFoundf("teaching %q", ref)
	default:
		return models.Teaching{}, fmt.Errorf("teaching %q is ambiguous (%d matches)", ref, len(matches))
	}
}
