package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDetectLang(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"english words", "What is the best L2?", LangEnglish},
		{"turkish word", "Base nedir", LangTurkish},
		{"turkish characters", "Çok güzel bir gün", LangTurkish},
		{"explicit english wins", "English only: base nasıl çalışır", LangEnglish},
		{"explicit turkish wins", "Türkçe yaz: what is the merge", LangTurkish},
		{"ascii without hints", "gm 1234", LangEnglish},
		{"other script", "привет мир", LangTurkish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectLang(tt.prompt))
		})
	}
}

func TestResolveLang(t *testing.T) {
	assert.Equal(t, LangTurkish, resolveLang("what is base", "tr"))
	assert.Equal(t, LangEnglish, resolveLang("base nedir", "en"))
	assert.Equal(t, LangTurkish, resolveLang("base nedir", "de"))
}

func TestEnforceShortOutput(t *testing.T) {
	longText := strings.Repeat("word ", 200)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"strips bullets", "- one\n* two", "one\ntwo"},
		{"strips numbering", "1. first\n2. second", "first\nsecond"},
		{"strips headings", "## Title\nbody", "Title\nbody"},
		{"keeps two paragraphs", "a\n\n\nb\n\nc", "a\n\nb"},
		{"drops blank paragraphs", "  \n\na\n\n  \n\nb", "a\n\nb"},
		{"cuts long text at word boundary", longText, strings.TrimSpace(strings.Repeat("word ", 136)) + "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, enforceShortOutput(tt.in))
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	en := buildPrompt("what is base", LangEnglish)
	assert.True(t, strings.HasPrefix(en, "Respond VERY BRIEFLY"))
	assert.True(t, strings.HasSuffix(en, "USER PROMPT:\nwhat is base"))

	tr := buildPrompt("base nedir", LangTurkish)
	assert.Contains(t, tr, "ÇOK KISA")
}

func TestContentService_GenerateFromPrompt(t *testing.T) {
	gen := &fakeGenerator{content: "1. Base is an L2.\n\nIt is cheap.\n\nExtra."}
	svc := NewContentService(gen, zap.NewNop())

	resp, err := svc.GenerateFromPrompt(context.Background(), "what is base", "")
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, "gemini", resp.Provider)
	assert.Equal(t, "gemini-test", resp.Model)
	assert.Equal(t, LangEnglish, resp.Lang)
	assert.Equal(t, "Base is an L2.\n\nIt is cheap.", resp.Text)
	assert.Equal(t, resp.Text, resp.Content)
	assert.Equal(t, resp.Text, resp.Result)
	assert.Equal(t, resp.Text, resp.Message)
	assert.True(t, strings.HasPrefix(gen.prompt, "Respond VERY BRIEFLY"))
}

func TestContentService_GenerateFromPrompt_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewContentService(&fakeGenerator{}, zap.NewNop()).GenerateFromPrompt(ctx, "  ", "")
	assert.ErrorIs(t, err, ErrEmptyPrompt)

	_, err = NewContentService(nil, zap.NewNop()).GenerateFromPrompt(ctx, "gm", "")
	assert.ErrorIs(t, err, ErrGeneratorUnavailable)

	upstream := errors.New("resource exhausted")
	_, err = NewContentService(&fakeGenerator{err: upstream}, zap.NewNop()).GenerateFromPrompt(ctx, "gm", "")
	assert.ErrorIs(t, err, upstream)
}
