// Local generation engine: deterministic, dependency-free templates.
//
// Output is a pure function of (type, topic, niche, tone, voice): template
// selection is driven by a hash of the inputs, never by wall-clock time or a
// global random source, so identical requests always produce identical
// variants. That keeps cache entries re-derivable and tests stable.

package engine

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/creatorkit/go-creator-backend/internal/domain"
)

// LocalEngine produces variants from built-in templates. It never fails for a
// request that passed input validation; the only error is an unsupported
// content type.
type LocalEngine struct{}

// NewLocalEngine returns a ready-to-use local engine.
func NewLocalEngine() *LocalEngine { return &LocalEngine{} }

// Name returns the engine label used in responses and cache entries.
func (e *LocalEngine) Name() string { return LabelLocal }

// Generate renders the template set for req.Type and applies brand-voice
// post-processing. The context is accepted for interface symmetry with the
// remote engine; no blocking work happens here.
func (e *LocalEngine) Generate(_ context.Context, req Request) ([]string, Usage, error) {
	var variants []string
	switch req.Type {
	case domain.TypeHook:
		variants = hooks(req)
	case domain.TypeScript:
		variants = scripts(req)
	case domain.TypeCaption:
		variants = captions(req)
	case domain.TypeHashtags:
		variants = hashtags(req)
	default:
		return nil, Usage{}, fmt.Errorf("%w: %q", ErrUnsupportedType, req.Type)
	}
	return ApplyVoice(variants, req.Type, req.Voice), Usage{}, nil
}

// rng derives a deterministic random source from the request inputs.
func rng(req Request) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(req.Type))
	h.Write([]byte{'|'})
	h.Write([]byte(strings.ToLower(req.Topic)))
	h.Write([]byte{'|'})
	h.Write([]byte(strings.ToLower(req.Niche)))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

var hookPatterns = []string{
	"The biggest mistake with %[1]s (that 90%% make)",
	"3 facts about %[1]s that will surprise you",
	"Why %[1]s changes everything in %[2]s",
	"Nobody tells you this about %[1]s…",
	"%[1]s in 30 seconds: what you need to know",
	"The 5-second rule for %[1]s",
	"If I started %[1]s again today…",
	"How to do %[1]s 10x faster",
	"Stop doing this: %[1]s in %[2]s",
	"Before you start with %[1]s, watch this",
}

func hooks(req Request) []string {
	out := make([]string, 0, len(hookPatterns))
	for _, p := range hookPatterns {
		out = append(out, fmt.Sprintf(p, req.Topic, req.Niche))
	}
	if strings.Contains(strings.ToLower(req.Tone), "casual") {
		for i := range out {
			out[i] = strings.ReplaceAll(out[i], "…", " 😮")
		}
	}
	return out[:10]
}

var scriptValues = []string{
	"Quick start: focus on one goal around %[1]s",
	"Avoid scatter: one format, one core message",
	"Build proof: show a mini case from %[2]s",
	"Use the 3-part structure: hook, value, CTA",
	"Track results weekly, not daily",
	"Repeat what works (the 80/20 principle)",
}

func scripts(req Request) []string {
	r := rng(req)
	hs := hooks(req)

	vals := make([]string, len(scriptValues))
	for i, v := range scriptValues {
		vals[i] = fmt.Sprintf(v, req.Topic, req.Niche)
	}
	r.Shuffle(len(vals), func(i, j int) { vals[i], vals[j] = vals[j], vals[i] })

	cta := req.Voice.Normalized().CTA[0]

	first := fmt.Sprintf("HOOK: %s\nVALUE 1: %s\nVALUE 2: %s\nVALUE 3: %s\nCTA: %s",
		hs[r.Intn(len(hs))], vals[0], vals[1], vals[2], cta)
	second := fmt.Sprintf("HOOK: %s\nSTEP 1: Show the problem in %s briefly\nSTEP 2: Solve it with %s in 2 points\nSTEP 3: Hint at the result\nCTA: %s",
		hs[r.Intn(len(hs))], req.Niche, req.Topic, cta)
	return []string{first, second}
}

func captions(req Request) []string {
	titler := cases.Title(language.English)
	short := fmt.Sprintf("%s in %s: 3 things that work right away. 🚀 #%s",
		titler.String(req.Topic), req.Niche, tagify(req.Niche))
	mid := fmt.Sprintf("%s explained fast: focus, consistency, measurement. Master these and you grow — no excuses.",
		titler.String(req.Topic))
	long := fmt.Sprintf("Today it's all about %s for %s. Start small, stay consistent, improve one thing every week. Ask in the comments for a matching template.",
		req.Topic, req.Niche)
	return []string{short, mid, long}
}

var broadTags = []string{
	"#learn", "#growth", "#creator", "#tips", "#howto", "#shorts",
	"#tiktok", "#reels", "#content", "#viral", "#strategy", "#daily",
	"#consistency", "#mindset",
}

func hashtags(req Request) []string {
	r := rng(req)

	out := make([]string, 0, 16)
	seen := make(map[string]struct{}, 16)
	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" || tag == "#" {
			return
		}
		low := strings.ToLower(tag)
		if _, dup := seen[low]; dup {
			return
		}
		seen[low] = struct{}{}
		out = append(out, tag)
	}

	// Base hashtags from the brand voice come first, then niche and topic
	// tags, then a shuffled selection of broad ones up to the 12-16 range.
	for _, t := range req.Voice.HashtagsBase {
		if !strings.HasPrefix(t, "#") {
			t = "#" + t
		}
		add(t)
	}
	add("#" + tagify(req.Niche))
	add("#" + tagify(req.Topic))

	pool := append([]string(nil), broadTags...)
	r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	for _, t := range pool {
		if len(out) >= 14 {
			break
		}
		add(t)
	}
	return out
}

// tagify lowercases and removes spaces so a phrase becomes a single hashtag
// body.
func tagify(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}
