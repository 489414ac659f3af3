package services

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"folio-gate/ai"
	"folio-gate/domain/chat"
	"folio-gate/errors"
	"folio-gate/moderation"
	"folio-gate/observability"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"
)

type IChatService interface {
	HandleChatRequest(ctx context.Context, clientKey, rawPrompt string) (chat.Reply, error)
}

// ChatConfig holds every tunable of the chat gate.
type ChatConfig struct {
	MaxPromptLength  int
	SystemPrompt     string
	OffTopicNote     string
	Model            string
	MaxOutputTokens  int
	Temperature      float64
	PresencePenalty  float64
	FrequencyPenalty float64
	UpstreamTimeout  time.Duration
}

type ChatService struct {
	log       *slog.Logger
	limiter   *RateLimiter
	denylist  moderation.Moderator
	allowlist moderation.Moderator
	completer ai.Completer
	monitor   *observability.Monitor
	config    ChatConfig
}

func NewChatService(log *slog.Logger, limiter *RateLimiter,
	denylist, allowlist moderation.Moderator, completer ai.Completer,
	monitor *observability.Monitor, config ChatConfig) *ChatService {
	return &ChatService{
		log:       log,
		limiter:   limiter,
		denylist:  denylist,
		allowlist: allowlist,
		completer: completer,
		monitor:   monitor,
		config:    config,
	}
}

// HandleChatRequest runs the gate: rate limit, validation, upstream call, response shaping.
// The first failing step wins and nothing after it runs. Returned errors are
// always *errors.ChatError.
func (s *ChatService) HandleChatRequest(ctx context.Context, clientKey, rawPrompt string) (chat.Reply, error) {
	s.monitor.IncrRequests()
	reply, err := s.handle(ctx, clientKey, rawPrompt)
	if err != nil {
		ce := errors.AsChatError(err)
		s.monitor.AddRejection(string(ce.Code))
		return chat.Reply{}, ce
	}
	return reply, nil
}

func (s *ChatService) handle(ctx context.Context, clientKey, rawPrompt string) (chat.Reply, error) {
	// 1. Rate limit
	decision, err := s.limiter.Allow(ctx, clientKey)
	if err != nil {
		s.log.Error("Rate limit store failure", "client", clientKey, "error", err)
		return chat.Reply{}, errors.ErrInternal.WithCause(err)
	}
	if !decision.Allowed {
		s.log.Info("Rate limit exceeded", "client", clientKey, "retry_after", decision.RetryAfterSeconds)
		return chat.Reply{}, errors.RateLimited(decision.RetryAfterSeconds)
	}

	// 2-4. Content validation
	validation := s.Validate(rawPrompt)
	switch validation.Reason {
	case chat.ReasonTooLong:
		return chat.Reply{}, errors.ErrTooLong
	case chat.ReasonEmpty:
		return chat.Reply{}, errors.ErrEmptyPrompt
	case chat.ReasonBlockedKeyword:
		// Matched terms stay in the logs, the caller only gets the generic message.
		_, words := s.denylist.Censor(rawPrompt)
		s.log.Warn("Blocked prompt", "client", clientKey, "matched", words)
		return chat.Reply{}, errors.ErrBlockedContent
	}

	// 5. Upstream call
	request := s.BuildCompletionRequest(rawPrompt, validation)
	lang := whatlanggo.Detect(rawPrompt).Lang.Iso6391()

	callCtx, cancel := context.WithTimeout(ctx, s.config.UpstreamTimeout)
	defer cancel()

	start := time.Now()
	completion, err := s.completer.Complete(callCtx, request)
	latency := time.Since(start)
	s.monitor.ObserveUpstream(latency, lo.FromPtr(completion.TotalTokens))
	if err != nil {
		return chat.Reply{}, s.mapUpstreamError(ctx, clientKey, err)
	}

	// 6. Response shaping
	if strings.TrimSpace(completion.Content) == "" {
		s.log.Error("Completion service returned no content", "client", clientKey)
		return chat.Reply{}, errors.ErrEmptyResponse
	}

	s.monitor.IncrAccepted(validation.OffTopic())
	s.log.Info("Chat completion served",
		"client", clientKey,
		"tokens", lo.FromPtr(completion.TotalTokens),
		"off_topic", validation.OffTopic(),
		"lang", lang,
		"latency_ms", latency.Milliseconds())

	return chat.Reply{Text: completion.Content, TokenCount: completion.TotalTokens}, nil
}

// Validate applies the length, emptiness, denylist and allowlist checks in that order.
// The length check comes first so an over-long prompt is TOO_LONG whatever it contains.
func (s *ChatService) Validate(prompt string) chat.ValidationResult {
	if utf8.RuneCountInString(prompt) > s.config.MaxPromptLength {
		return chat.Rejected(chat.ReasonTooLong)
	}
	if strings.TrimSpace(prompt) == "" {
		return chat.Rejected(chat.ReasonEmpty)
	}
	if s.denylist.Contains(prompt) {
		return chat.Rejected(chat.ReasonBlockedKeyword)
	}
	if !s.allowlist.Contains(prompt) {
		return chat.Accepted(chat.ReasonOffTopic)
	}
	return chat.Accepted(chat.ReasonOK)
}

// BuildCompletionRequest assembles the system and user messages and the sampling parameters.
func (s *ChatService) BuildCompletionRequest(prompt string, validation chat.ValidationResult) ai.CompletionRequest {
	system := s.config.SystemPrompt
	if validation.OffTopic() {
		system += "\n\n" + s.config.OffTopicNote
	}
	return ai.CompletionRequest{
		Model: s.config.Model,
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: system},
			{Role: ai.RoleUser, Content: prompt},
		},
		MaxTokens:        s.config.MaxOutputTokens,
		Temperature:      s.config.Temperature,
		PresencePenalty:  s.config.PresencePenalty,
		FrequencyPenalty: s.config.FrequencyPenalty,
	}
}

// mapUpstreamError logs the real cause and returns the client-safe error.
func (s *ChatService) mapUpstreamError(ctx context.Context, clientKey string, err error) error {
	if errors.Is(err, errors.ErrMissingCredential) {
		s.log.Error("Completion service credential not configured")
		return errors.ErrServiceUnavailable.WithCause(err)
	}

	var statusErr *ai.StatusError
	if errors.As(err, &statusErr) {
		s.log.Error("Completion service error",
			"client", clientKey, "status", statusErr.StatusCode, "body", statusErr.Body)
		switch statusErr.StatusCode {
		case 429:
			return errors.ErrServiceBusy.WithCause(err)
		case 401, 403:
			return errors.ErrConfiguration.WithCause(err)
		default:
			return errors.ErrUpstream.WithCause(err)
		}
	}

	if ctx.Err() != nil {
		s.log.Debug("Client went away before the completion returned", "client", clientKey, "error", ctx.Err())
		return errors.ErrInternal.WithCause(ctx.Err())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		s.log.Error("Completion service timed out", "client", clientKey, "timeout", s.config.UpstreamTimeout)
		return errors.ErrUpstream.WithCause(err)
	}

	s.log.Error("Completion service call failed", "client", clientKey, "error", err)
	return errors.ErrUpstream.WithCause(err)
}
