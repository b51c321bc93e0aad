// Package research drafts research documents with Gemini. It is the desk's
// local drafting tool: a quick one-pager or memo written on the spot, as
// opposed to the full generation jobs the documents backend executes and the
// tracker follows.
package research

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/oneview/marketdesk"
	"github.com/oneview/marketdesk/tracker"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Analyst is a chat session specialized in writing research documents.
type Analyst struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	chat      *genai.Chat
}

// NewAnalyst creates an Analyst with the default model and a system
// instruction tuned for desk research notes.
func NewAnalyst() *Analyst {
	return &Analyst{
		ModelName: DefaultModel,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: "You are a sell-side equity research analyst. " +
				"Write in sober, factual markdown. Never invent figures: when a number is not provided, say so."}}},
		},
	}
}

// Start creates the underlying Gemini chat.
func (a *Analyst) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, a.ModelName, a.Config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// Draft writes a document of the given kind about the asset and returns it as
// markdown.
func (a *Analyst) Draft(ctx context.Context, client *genai.Client, asset marketdesk.Asset, kind tracker.Kind) (string, error) {
	if a.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return "", err
		}
	}

	resp, err := a.chat.Send(ctx, &genai.Part{Text: Prompt(asset, kind)})
	if err != nil {
		return "", fmt.Errorf("drafting %s for %q failed: %w", kind, asset.Symbol, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the analyst for %q", asset.Symbol)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// Prompt builds the drafting instruction for an asset and document kind.
func Prompt(asset marketdesk.Asset, kind tracker.Kind) string {
	subject := asset.Symbol
	if asset.Name != "" {
		subject = fmt.Sprintf("%s (%s)", asset.Name, asset.Symbol)
	}
	if asset.ISIN != "" {
		subject += ", ISIN " + asset.ISIN
	}

	switch kind {
	case tracker.Memo:
		return fmt.Sprintf("Write an investment memo about %s: thesis, key risks, and what to monitor next quarter.", subject)
	default:
		return fmt.Sprintf("Write a one-page overview of %s: business summary, recent developments, and valuation context.", subject)
	}
}
