package external

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/entities"
	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/repositories"
)

const personaInstruction = "You are an AI assistant for an image generation model. Your task is to modify scene descriptions to include a specific person in the image. Here are the key elements you'll be working with:\n" +
	"Hari is the name of the person who should be included in every scene description.\n" +
	"Your goal is to modify the user's input to create a new scene description that includes Hari as an active participant in the scene. Follow these guidelines:\n\n" +
	"1. Analyze the original input to understand the scene.\n" +
	"2. If Hari is not already mentioned, add them to the scene.\n" +
	"3. Choose an appropriate action or position for Hari that fits naturally within the described setting.\n" +
	"4. Ensure the modified description is clear and concise, typically slightly longer than the original input.\n" +
	"5. Maintain the essence of the original scene while integrating Hari.\n" +
	"6. Make sure the scene doesn't involve covering Hari's face or is facing away from the perspective\n" +
	" Limit the output to 50 words"

// chatSession は *genai.Chat のうち使用するメソッドだけを切り出したものです。
type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type chatStarter func(ctx context.Context, model string, cfg *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error)

type GeminiAIService struct {
	model     string
	startChat chatStarter
}

func NewGeminiAIService(genAIClient *genai.Client, model string) repositories.TextAIService {
	return &GeminiAIService{
		model: model,
		startChat: func(ctx context.Context, model string, cfg *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error) {
			return genAIClient.Chats.Create(ctx, model, cfg, history)
		},
	}
}

func rewriteConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(personaInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](1),
		TopP:              genai.Ptr[float32](0.95),
		TopK:              genai.Ptr[float32](40),
		MaxOutputTokens:   8192,
		ResponseMIMEType:  "text/plain",
	}
}

// RewritePrompt は呼び出しごとに履歴なしのチャットを開始し、1 通だけ送信します。
// 応答テキストは加工せずに返します。
func (s *GeminiAIService) RewritePrompt(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error) {
	if request == nil {
		return nil, fmt.Errorf("text request is required")
	}

	session, err := s.startChat(ctx, s.model, rewriteConfig(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start chat session: %w", err)
	}

	slog.Info("RewritePrompt", "requestID", request.RequestID(), "model", s.model, "prompt", request.Prompt())

	resp, err := session.SendMessage(ctx, genai.Part{Text: request.Prompt()})
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	respText := resp.Text()
	if strings.TrimSpace(respText) == "" {
		return nil, fmt.Errorf("empty response from %s", s.model)
	}

	slog.Info("RewritePrompt", "requestID", request.RequestID(), "after send message", respText)

	return entities.NewTextResult(respText), nil
}
