package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeCompletion struct {
	model, system, prompt string
	out                   string
	err                   error
}

func (f *fakeCompletion) summarizer(cfg Config) *LLMSummarizer {
	return &LLMSummarizer{
		cfg: cfg,
		completer: func(model string) completeFunc {
			return func(_ context.Context, system, prompt string) (string, error) {
				f.model, f.system, f.prompt = model, system, prompt
				return f.out, f.err
			}
		},
	}
}

func TestSummarize(t *testing.T) {
	cfg := Config{LLMAPIKey: "k", LLMModel: "fast-model", MaxContentChars: 100}

	t.Run("default model", func(t *testing.T) {
		f := &fakeCompletion{out: "```markdown\n# Title\nbody\n```"}
		got, err := f.summarizer(cfg).Summarize(context.Background(), SummarizeRequest{
			Text: "transcript", SourceType: SourceYouTube, Mode: ModeReport,
		})
		if err != nil {
			t.Fatalf("Summarize: %v", err)
		}
		if got != "# Title\nbody" {
			t.Errorf("got %q", got)
		}
		if f.model != "fast-model" {
			t.Errorf("model = %q", f.model)
		}
		if !strings.Contains(f.prompt, "字幕データ") || !strings.Contains(f.prompt, "transcript") {
			t.Errorf("prompt missing source kind or text: %q", f.prompt)
		}
	})

	t.Run("explicit model", func(t *testing.T) {
		f := &fakeCompletion{out: "ok"}
		if _, err := f.summarizer(cfg).Summarize(context.Background(), SummarizeRequest{
			Text: "x", Model: "pro-model", Mode: ModeArticle,
		}); err != nil {
			t.Fatal(err)
		}
		if f.model != "pro-model" {
			t.Errorf("model = %q", f.model)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		f := &fakeCompletion{}
		_, err := f.summarizer(Config{}).Summarize(context.Background(), SummarizeRequest{Text: "x"})
		if !errors.Is(err, ErrConfig) {
			t.Errorf("err = %v, want ErrConfig", err)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		f := &fakeCompletion{}
		_, err := f.summarizer(cfg).Summarize(context.Background(), SummarizeRequest{Text: "  "})
		if !errors.Is(err, ErrNoContent) {
			t.Errorf("err = %v, want ErrNoContent", err)
		}
	})

	t.Run("provider error verbatim", func(t *testing.T) {
		boom := errors.New("429 rate limited")
		f := &fakeCompletion{err: boom}
		_, err := f.summarizer(cfg).Summarize(context.Background(), SummarizeRequest{Text: "x"})
		if !errors.Is(err, boom) {
			t.Errorf("err = %v, want provider error", err)
		}
	})
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "# A\nB", "# A\nB"},
		{"markdown fence", "```markdown\n# A\n```", "# A"},
		{"md fence", "```md\n# A\n```", "# A"},
		{"mermaid kept", "# A\n```mermaid\ngraph TD\n```", "# A\n```mermaid\ngraph TD\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name     string
		req      SummarizeRequest
		contains []string
		absent   []string
	}{
		{
			name:     "report youtube",
			req:      SummarizeRequest{Text: "hello", SourceType: SourceYouTube, Mode: ModeReport},
			contains: []string{"字幕データ", "マネタイズ", "graph TD", noFocus, "# 入力テキスト\nhello"},
			absent:   []string{"# ソースURL"},
		},
		{
			name:     "article web with focus and url",
			req:      SummarizeRequest{Text: "t", SourceType: SourceWeb, Mode: ModeArticle, FocusHint: "初心者向け", SourceURL: "https://e.com"},
			contains: []string{"Web記事", "有料note", "初心者向け", "# ソースURL\nhttps://e.com"},
		},
		{
			name:     "notebook source",
			req:      SummarizeRequest{Text: "t", Mode: ModeNotebookSource},
			contains: []string{"NotebookLM"},
		},
		{
			name:     "unknown mode falls back to report",
			req:      SummarizeRequest{Text: "t", Mode: "bogus"},
			contains: []string{"マネタイズ"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPrompt(tt.req, 0)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("prompt missing %q", s)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(got, s) {
					t.Errorf("prompt unexpectedly contains %q", s)
				}
			}
		})
	}
}

func TestBuildPromptTruncates(t *testing.T) {
	got := BuildPrompt(SummarizeRequest{Text: strings.Repeat("あ", 50), Mode: ModeReport}, 10)
	if strings.Contains(got, strings.Repeat("あ", 11)) {
		t.Error("text not truncated")
	}
}

func TestBatchFocusHint(t *testing.T) {
	for _, m := range []OutputMode{ModeReport, ModeArticle, ModeNotebookSource} {
		if BatchFocusHint(m) == "" {
			t.Errorf("BatchFocusHint(%q) empty", m)
		}
	}
	if BatchFocusHint("x") != BatchFocusHint(ModeNotebookSource) {
		t.Error("unknown mode should use the notebook-source hint")
	}
}
