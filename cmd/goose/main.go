// Command goose runs a one-shot chat completion against a configured
// provider and renders the reply in the terminal.
//
// Usage:
//
//	goose -list
//	goose -provider omg -model gpt-4o "explain io.Reader in two sentences"
//
// API keys are read from the environment; a .env file in the working
// directory is loaded when present.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/XXpE3/goose/pkg/chats/message"
	"github.com/XXpE3/goose/pkg/chats/role"
	"github.com/XXpE3/goose/pkg/config"
	"github.com/XXpE3/goose/pkg/providers"
	"github.com/XXpE3/goose/pkg/providers/model"
)

var (
	dimStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	idStyle    = lipgloss.NewStyle().Bold(true)
)

func main() {
	providerID := flag.String("provider", "omg", "provider id (see -list)")
	modelName := flag.String("model", "", "model name (provider default when empty)")
	system := flag.String("system", "", "system prompt")
	timeout := flag.Duration("timeout", 2*time.Minute, "request timeout")
	list := flag.Bool("list", false, "list available providers and exit")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := run(*providerID, *modelName, *system, *timeout, *list, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:")+" "+err.Error())
		os.Exit(1)
	}
}

func run(providerID, modelName, system string, timeout time.Duration, list bool, args []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	if list {
		printProviders()
		return nil
	}

	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		return errors.New("no prompt given; pass it as the trailing argument")
	}

	p, err := providers.New(providerID, model.New(modelName))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	reply, pu, err := p.Complete(ctx, system, []message.Message{
		message.NewText(role.User, prompt),
	}, nil)
	if err != nil {
		return err
	}

	fmt.Println(renderMarkdown(reply.TextContent()))

	tc := pu.Usage.TokenCount()
	fmt.Println(dimStyle.Render(fmt.Sprintf("%s · %d in / %d out tokens", pu.Model, tc.InputTokens, tc.OutputTokens)))

	return nil
}

// renderMarkdown converts markdown text to terminal-formatted output,
// falling back to the raw text when rendering fails.
func renderMarkdown(text string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return text
	}

	out, err := r.Render(text)
	if err != nil {
		return text
	}

	return strings.TrimRight(out, "\n")
}

func printProviders() {
	for _, md := range providers.All() {
		fmt.Printf("%s  %s\n", idStyle.Render(md.ID), md.Description)
		fmt.Printf("    default model: %s\n", md.DefaultModel)
		if len(md.KnownModels) > 0 {
			fmt.Printf("    known models:  %s\n", strings.Join(md.KnownModels, ", "))
		}
		for _, key := range md.ConfigKeys {
			req := "optional"
			if key.Required {
				req = "required"
			}
			fmt.Printf("    config:        %s (%s)\n", key.Name, req)
		}
		fmt.Println(dimStyle.Render("    docs: " + md.DocURL))
	}
}
