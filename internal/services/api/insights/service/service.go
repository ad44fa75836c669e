// Package service turns ticket descriptions into themed summaries
package service

import (
	"context"
	"fmt"
	"strings"

	"deskscope/internal/modkit/repokit"
	perr "deskscope/internal/platform/errors"
	"deskscope/internal/services/api/insights/domain"
	"deskscope/internal/services/api/insights/repo"

	openai "github.com/sashabaranov/go-openai"
)

// Service defines the insights service contract
type Service interface {
	domain.ServicePort
}

// Completer is the chat-completions seam; *openai.Client satisfies it
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config tunes the summary prompt
type Config struct {
	Model string

	// MaxTickets caps prompt size when the caller sends none
	MaxTickets int
}

// Svc implements the insights service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	llm    Completer
	cfg    Config
}

// New constructs an insights service. llm may be nil, which disables the
// endpoint (no API key configured)
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], llm Completer, cfg Config) *Svc {
	if db == nil {
		panic("insights.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("insights.Service requires a non nil Repo binder")
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.MaxTickets <= 0 {
		cfg.MaxTickets = 50
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, llm: llm, cfg: cfg}
}

const systemPrompt = "You summarize IT service desk tickets. Group the descriptions " +
	"into recurring themes, name each theme on one line and add a short explanation. " +
	"Answer in the language most descriptions are written in."

// Summarize collects the category's descriptions in the window and asks the
// chat model for recurring themes
func (s *Svc) Summarize(ctx context.Context, in domain.SummaryInput) (domain.SummaryOutput, error) {
	if s.llm == nil {
		return domain.SummaryOutput{}, perr.Unavailablef("insights disabled: no api key configured")
	}

	limit := in.MaxTickets
	if limit <= 0 {
		limit = s.cfg.MaxTickets
	}
	descs, err := s.Repo.Descriptions(ctx, in.Range.Start, in.Range.End, in.CompanyTag, in.MainCategory, limit)
	if err != nil {
		return domain.SummaryOutput{}, err
	}
	if len(descs) == 0 {
		return domain.SummaryOutput{
			MainCategory: in.MainCategory,
			Model:        s.cfg.Model,
			Summary:      "No tickets with a description in this window.",
		}, nil
	}

	resp, err := s.llm.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(in.MainCategory, descs)},
		},
	})
	if err != nil {
		return domain.SummaryOutput{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "chat completion")
	}
	if len(resp.Choices) == 0 {
		return domain.SummaryOutput{}, perr.Unavailablef("chat completion returned no choices")
	}

	return domain.SummaryOutput{
		MainCategory: in.MainCategory,
		Tickets:      len(descs),
		Summary:      strings.TrimSpace(resp.Choices[0].Message.Content),
		Model:        s.cfg.Model,
	}, nil
}

func buildPrompt(category string, descs []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Category: %s\nTickets (%d):\n", category, len(descs))
	for i, d := range descs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.ReplaceAll(d, "\n", " "))
	}
	return b.String()
}
