package posts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/julianstephens/omayami/internal/cli"
	clierrors "github.com/julianstephens/omayami/internal/errors"
	"github.com/julianstephens/omayami/internal/journal"
	"github.com/julianstephens/omayami/internal/models"
	"github.com/julianstephens/omayami/internal/render"
)

type ChatCmd struct {
	ID      string `arg:"" help:"Post ID, or a unique part of it."`
	Message string `arg:"" optional:"" help:"Message to send. Omit to start the chat on a post without one."`
}

func (c *ChatCmd) Run(ctx *cli.Context) error {
	post, err := ctx.FindPost(c.ID)
	if err != nil {
		return err
	}
	msg := strings.TrimSpace(c.Message)
	if msg == "" && post.HasChat() {
		return errors.New("message is required to continue the chat")
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Thinking...")
	updated, err := ctx.Journal().RequestAdvice(sigCtx, post.ID, msg)
	if err != nil {
		switch {
		case errors.Is(err, journal.ErrAccessCodeRequired):
			return clierrors.WithHint(err, "run 'omayami access-code <code>'")
		case errors.Is(err, journal.ErrAPIKeyRequired):
			return clierrors.WithHint(err, "run 'omayami settings --api-key <key>'")
		}
		return fmt.Errorf("could not get advice: %w", err)
	}

	if n := len(updated.AIChat); n > 0 && updated.AIChat[n-1].Role == models.RoleAssistant {
		fmt.Println()
		fmt.Println(render.SanitizeTerminal(updated.AIChat[n-1].Content))
	}
	return nil
}
