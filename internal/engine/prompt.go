package engine

import (
	"fmt"
	"strings"
)

const systemPrompt = "You turn transcripts and articles into structured Japanese Markdown knowledge assets. Never add greetings or preambles."

const noFocus = "特になし"

// Per-mode focus hints used when a batch run supplies none.
var batchFocusHints = map[OutputMode]string{
	ModeReport:         "マネタイズの観点から、収益化に繋がる重要なポイントを抽出してください。",
	ModeArticle:        "読者が深い学びを得られるよう、背景知識や具体的なアクションを含めて解説してください。",
	ModeNotebookSource: "NotebookLMのソースとして客観的な事実を中心に抽出してください。",
}

// BatchFocusHint returns the default focus hint for mode.
func BatchFocusHint(mode OutputMode) string {
	if h, ok := batchFocusHints[mode]; ok {
		return h
	}
	return batchFocusHints[ModeNotebookSource]
}

const reportPrompt = `あなたは「個人の知的資産を最大化し、収益化に繋げる戦略家」です。
提供された%[1]sから、以下の2段構成で「マネタイズ資産」としてのレポートを出力してください。

# 重点フォーカス事項
%[2]s

# 出力フォーマット（厳守）

## ■ セクション1：内容のまとめ（Quick Summary）
- **3行要約:** 内容の本質を凝縮。
- **重要トピック:** 抽出した事実やデータ（3〜5点）。

## ■ セクション2：個人マネタイズ特化の構造化（Monetization Asset）
### ① 資産の本質（Core Value）
### ② 独自の知識抽出（Key Insights）
### ③ マネタイズ・アングル（Monetization Ideas）
- デジタルコンテンツとして完結する販売モデルを1つ以上含めること。
### ④ コンテンツ・フック（Content Hooks）
### ⑤ メタデータ（タグ）
### ⑥ 即実行リスト（Immediate Action）
### ⑦ 詳細な内容まとめ（Detailed Content Summary）
### ⑧ 構造図解（Structural Diagram）
- 必ず ` + "`graph TD`" + ` の Mermaid.js で作成し、ノードのテキストは二重引用符で囲むこと（例: A["テキスト"]）。
- ` + "```mermaid" + ` のコードブロックで囲むこと。
`

const articlePrompt = `あなたはプロの「トップ編集者兼テクニカルライター」です。
提供された%[1]sを元に、そのまま「有料note」の下書きとして使える3,000文字程度の深堀り解説記事を作成してください。

# 執筆方針
- 文体は「です・ます」調。知的で親しみやすいトーン。
- WhyとHowを深掘りし、不足する背景知識は補完すること。

# 重点フォーカス事項
%[2]s

# 出力構成（Markdown）
## タイトル
## 1. はじめに：なぜ今、これが重要なのか
## 2. コア・コンセプトの解像度を上げる
## 3. 実践のための具体的なメソッド
## 4. 視座を高める（応用・展開）
## 5. おわりに：明日からのアクション
`

const notebookSourcePrompt = `あなたは「AIナレッジベース構築のためのデータアナリスト」です。
提供された%[1]sから、NotebookLM等のRAGシステムが知識ソースとして最適に利用できる形式で要約してください。

# 方針
- 解釈や提案は含めず、事実・論点・具体的なノウハウ・固有名詞を正確に抽出すること。

# 重点フォーカス事項
%[2]s

# 出力構成（Markdown）
## タイトル
## 概要
## 主要な論点
## 具体的な事実・数値・固有名詞
## ノウハウ・手順
## キーワード
`

var modePrompts = map[OutputMode]string{
	ModeReport:         reportPrompt,
	ModeArticle:        articlePrompt,
	ModeNotebookSource: notebookSourcePrompt,
}

// BuildPrompt assembles the full user prompt for req. Text beyond maxChars
// runes is cut with an ellipsis.
func BuildPrompt(req SummarizeRequest, maxChars int) string {
	tmpl, ok := modePrompts[req.Mode]
	if !ok {
		tmpl = reportPrompt
	}

	kind := "Web記事"
	if req.SourceType == SourceYouTube {
		kind = "字幕データ"
	}
	focus := strings.TrimSpace(req.FocusHint)
	if focus == "" {
		focus = noFocus
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, tmpl, kind, focus)
	if req.SourceURL != "" {
		fmt.Fprintf(&sb, "\n# ソースURL\n%s\n", req.SourceURL)
	}
	sb.WriteString("\n# 入力テキスト\n")
	sb.WriteString(TruncateRunes(req.Text, maxChars, "..."))
	sb.WriteString("\n")
	return sb.String()
}
