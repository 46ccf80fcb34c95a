package engine

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/creatorkit/go-creator-backend/internal/domain"
)

func baseRequest(typ string) Request {
	return Request{
		Type:  typ,
		Topic: "growth",
		Niche: "fitness",
		Tone:  "casual",
		Voice: domain.BrandVoice{}.Normalized(),
	}
}

func TestLocal_HookCount(t *testing.T) {
	e := NewLocalEngine()
	variants, usage, err := e.Generate(context.Background(), baseRequest(domain.TypeHook))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(variants) != 10 {
		t.Fatalf("len(hooks) = %d; want 10", len(variants))
	}
	for i, v := range variants {
		if strings.TrimSpace(v) == "" {
			t.Errorf("hook %d is empty", i)
		}
		if !strings.Contains(strings.ToLower(v), "growth") && !strings.Contains(strings.ToLower(v), "fitness") {
			t.Errorf("hook %d mentions neither topic nor niche: %q", i, v)
		}
	}
	if usage != (Usage{}) {
		t.Errorf("local engine reported token usage: %+v", usage)
	}
}

func TestLocal_ScriptStructure(t *testing.T) {
	e := NewLocalEngine()
	variants, _, err := e.Generate(context.Background(), baseRequest(domain.TypeScript))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(variants) != 2 {
		t.Fatalf("len(scripts) = %d; want 2", len(variants))
	}
	for i, s := range variants {
		if !strings.HasPrefix(s, "HOOK:") {
			t.Errorf("script %d missing HOOK line: %q", i, s)
		}
		if !strings.Contains(s, "CTA:") {
			t.Errorf("script %d missing CTA line: %q", i, s)
		}
		if got := len(strings.Split(s, "\n")); got != 5 {
			t.Errorf("script %d has %d lines; want 5 (hook, three points, cta)", i, got)
		}
	}
}

func TestLocal_CaptionsIncreasingLength(t *testing.T) {
	e := NewLocalEngine()
	variants, _, err := e.Generate(context.Background(), baseRequest(domain.TypeCaption))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(variants) != 3 {
		t.Fatalf("len(captions) = %d; want 3", len(variants))
	}
	if !(len(variants[0]) < len(variants[2])) {
		t.Errorf("long caption (%d chars) not longer than short (%d chars)", len(variants[2]), len(variants[0]))
	}
}

func TestLocal_HashtagsStartWithBase(t *testing.T) {
	e := NewLocalEngine()
	req := baseRequest(domain.TypeHashtags)
	req.Voice.HashtagsBase = []string{"#mybrand", "coachlife"}

	variants, _, err := e.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(variants) < 12 || len(variants) > 16 {
		t.Fatalf("len(hashtags) = %d; want 12-16", len(variants))
	}
	if variants[0] != "#mybrand" || variants[1] != "#coachlife" {
		t.Errorf("base hashtags not first: %v", variants[:2])
	}
	seen := map[string]struct{}{}
	for _, tag := range variants {
		if !strings.HasPrefix(tag, "#") {
			t.Errorf("hashtag without #: %q", tag)
		}
		low := strings.ToLower(tag)
		if _, dup := seen[low]; dup {
			t.Errorf("duplicate hashtag %q", tag)
		}
		seen[low] = struct{}{}
	}
}

func TestLocal_Deterministic(t *testing.T) {
	e := NewLocalEngine()
	for _, typ := range []string{domain.TypeHook, domain.TypeScript, domain.TypeCaption, domain.TypeHashtags} {
		a, _, err := e.Generate(context.Background(), baseRequest(typ))
		if err != nil {
			t.Fatalf("Generate(%s): %v", typ, err)
		}
		b, _, err := e.Generate(context.Background(), baseRequest(typ))
		if err != nil {
			t.Fatalf("Generate(%s): %v", typ, err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s output not deterministic:\n%v\n%v", typ, a, b)
		}
	}
}

func TestLocal_UnsupportedType(t *testing.T) {
	e := NewLocalEngine()
	_, _, err := e.Generate(context.Background(), baseRequest("poem"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("err = %v; want ErrUnsupportedType", err)
	}
}

func TestLocal_ForbiddenWordsMasked(t *testing.T) {
	e := NewLocalEngine()
	req := baseRequest(domain.TypeHook)
	req.Voice.Forbidden = []string{"growth"}

	variants, _, err := e.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, v := range variants {
		if strings.Contains(strings.ToLower(v), "growth") {
			t.Errorf("variant %d still contains forbidden word: %q", i, v)
		}
	}
}
