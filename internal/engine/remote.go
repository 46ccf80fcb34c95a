// Remote generation engine: chat completions against an OpenRouter-compatible
// provider with strict output-shape enforcement and bounded retries.

package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// RemoteConfig configures the remote engine.
type RemoteConfig struct {
	APIKey  string
	Model   string        // e.g. "x-ai/grok-4-fast:free"
	BaseURL string        // defaults to the OpenRouter endpoint
	Timeout time.Duration // per-attempt ceiling; each retry gets a fresh budget

	MaxAttempts int           // retry budget for transient failures
	Backoff     time.Duration // base backoff, grows linearly per attempt
}

// completionClient is the slice of the openai client the engine needs;
// narrowed for tests.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// RemoteEngine calls an external text-generation provider. Failures are
// classified transient or terminal (see RemoteError); the orchestrator treats
// any error from here as "remote unavailable" and falls through to the local
// engine.
type RemoteEngine struct {
	cfg    RemoteConfig
	client completionClient
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRemoteEngine builds the engine. A missing API key is not an error here;
// Generate reports it as a permanent failure so the caller demotes to the
// local engine immediately.
func NewRemoteEngine(cfg RemoteConfig) *RemoteEngine {
	if cfg.Model == "" {
		cfg.Model = "x-ai/grok-4-fast:free"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 2
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 800 * time.Millisecond
	}

	var client completionClient
	if cfg.APIKey != "" {
		oc := openai.DefaultConfig(cfg.APIKey)
		oc.BaseURL = cfg.BaseURL
		client = openai.NewClientWithConfig(oc)
	}

	return &RemoteEngine{
		cfg:    cfg,
		client: client,
		sleep:  sleepCtx,
	}
}

// Name returns the engine label used in responses and cache entries.
func (e *RemoteEngine) Name() string { return LabelRemote }

// Configured reports whether a credential is present.
func (e *RemoteEngine) Configured() bool { return e.client != nil }

// Generate requests variants from the provider. Transient failures (429, 403,
// 402) are retried up to the configured attempt budget with linearly
// increasing backoff; cancellation is respected between attempts. Terminal
// failures (missing credential, network fault, unparseable content after all
// fallbacks) propagate immediately — the engine never returns an empty result
// silently.
func (e *RemoteEngine) Generate(ctx context.Context, req Request) ([]string, Usage, error) {
	if e.client == nil {
		return nil, Usage{}, ErrMissingAPIKey
	}

	chatReq := openai.ChatCompletionRequest{
		Model: e.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(req)},
		},
		Temperature: temperatureFor(req.Type),
		MaxTokens:   1200,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "variants_schema",
				Schema: variantsSchema,
				Strict: true,
			},
		},
	}

	var lastErr error
	for attempt := 1; attempt <= e.cfg.MaxAttempts; attempt++ {
		resp, err := e.completeOnce(ctx, chatReq)
		if err != nil {
			lastErr = classify(err)
			if IsTransient(lastErr) && attempt < e.cfg.MaxAttempts {
				log.Warn().Err(lastErr).Int("attempt", attempt).Msg("remote engine throttled, backing off")
				if serr := e.sleep(ctx, time.Duration(attempt)*e.cfg.Backoff); serr != nil {
					return nil, Usage{}, &RemoteError{Err: serr}
				}
				continue
			}
			return nil, Usage{}, lastErr
		}

		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			return nil, Usage{}, &RemoteError{Err: errors.New("empty completion")}
		}

		variants := parseVariants(resp.Choices[0].Message.Content, maxVariants(req.Type))
		if len(variants) == 0 {
			return nil, Usage{}, &RemoteError{Err: errors.New("unparseable completion content")}
		}
		usage := Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
		return ApplyVoice(variants, req.Type, req.Voice), usage, nil
	}
	return nil, Usage{}, lastErr
}

// completeOnce runs a single completion attempt under its own timeout so a
// slow first attempt cannot starve the retries of their budget.
func (e *RemoteEngine) completeOnce(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()
	return e.client.CreateChatCompletion(ctx, req)
}

// classify wraps provider errors into RemoteError with the HTTP status when
// one is available.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &RemoteError{StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &RemoteError{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return &RemoteError{Err: err}
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// temperatureFor tunes sampling per content type: creative for hooks and
// captions, conservative for structured scripts and hashtag lists.
func temperatureFor(contentType string) float32 {
	switch contentType {
	case "hook", "caption":
		return 0.7
	default:
		return 0.4
	}
}

// variantsSchema constrains the completion to a single JSON object with one
// array-of-strings field.
var variantsSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "variants": {
      "type": "array",
      "items": {"type": "string"},
      "minItems": 1,
      "maxItems": 20
    }
  },
  "required": ["variants"],
  "additionalProperties": false
}`)

const systemPrompt = "You are a concise shortform content writer. " +
	`Always reply ONLY with strict JSON that matches this schema: {"variants": ["string", "..."]}. ` +
	"No markdown, no code fences, no explanations."

// userPrompt renders the per-type generation rules plus the brand-voice
// constraints into a single instruction block.
func userPrompt(req Request) string {
	voice := req.Voice
	lines := []string{
		"TYPE: " + req.Type,
		"TOPIC: " + req.Topic,
		"NICHE: " + req.Niche,
		"TONE: " + req.Tone,
		fmt.Sprintf("EMOJIS_ALLOWED: %t", voice.EmojisAllowed()),
		"FORBIDDEN_WORDS: [" + strings.Join(voice.Forbidden, ", ") + "]",
		"GLOBAL RULES:",
		`- Reply ONLY as JSON matching {"variants": ["..."]}.`,
		"- No explanations, no markdown, no code fences.",
		"- No duplicate variants.",
		"- No hashtags in hooks or captions (except in hashtag mode).",
		"- If EMOJIS_ALLOWED=false, use no emojis at all.",
	}
	if len(voice.CTA) > 0 {
		lines = append(lines, "CTAS: "+strings.Join(voice.CTA, " | "))
	}
	if len(voice.HashtagsBase) > 0 {
		lines = append(lines, "BASE_HASHTAGS: "+strings.Join(voice.HashtagsBase, " "))
	}

	switch req.Type {
	case "hook":
		lines = append(lines,
			"HOOK RULES:",
			"- Give EXACTLY 10 hooks.",
			"- Each hook 7-9 words, at most one sentence.",
			"- Punchy, concrete, everyday language.",
			"- Prefer numbers, contrast frames, a strong benefit statement.",
			"- No trailing period, no hashtags.",
		)
	case "script":
		lines = append(lines,
			"SCRIPT RULES:",
			"Give 2 scripts (30-45s): hook, then 3 value points, then CTA.",
			"Short sentences, active verbs, concrete tips.",
		)
	case "caption":
		lines = append(lines,
			"CAPTION RULES:",
			"Give 3 captions: short (~15 words), medium (~35), long (~60-80).",
			"Exactly one CTA line on the long caption, if CTAs are provided.",
		)
	case "hashtags":
		lines = append(lines,
			"HASHTAG RULES:",
			"Give 12-16 hashtags. Start with BASE_HASHTAGS (if present), then niche tags, then 2-3 broad ones.",
			"No duplicates.",
		)
	}

	if len(voice.Forbidden) > 0 {
		lines = append(lines, "Avoid or mask FORBIDDEN_WORDS.")
	}
	return strings.Join(lines, "\n")
}

// tripleDashRE splits degraded plain-text completions on a line of dashes.
var tripleDashRE = regexp.MustCompile(`\n-{3,}\n`)

// parseVariants extracts the variant list from completion content. The strict
// path parses the JSON object; on failure two degrading fallbacks apply in
// order: split on a triple-dash separator line, then split on newlines. Each
// path is bounded to max entries.
func parseVariants(content string, max int) []string {
	content = strings.TrimSpace(content)

	var obj struct {
		Variants []string `json:"variants"`
	}
	if err := json.Unmarshal([]byte(content), &obj); err == nil && len(obj.Variants) > 0 {
		return bound(obj.Variants, max)
	}

	if parts := tripleDashRE.Split(content, -1); len(parts) > 1 {
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return bound(out, max)
		}
	}

	var lines []string
	for _, ln := range strings.Split(content, "\n") {
		ln = strings.Trim(ln, " -•\t")
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return bound(lines, max)
}

func bound(s []string, max int) []string {
	if max > 0 && len(s) > max {
		return s[:max]
	}
	return s
}
