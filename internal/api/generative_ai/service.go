package generativeAI

import (
	"context"
	"fmt"
	"os"

	"github.com/galagram/galagram-api/config"
	"google.golang.org/genai"
)

// AIClient wraps the Gemini client for single-shot generations and chat
// sessions. Construct it once at startup with NewAIClient; a nil *AIClient is
// a valid receiver for Configured and means no credential is available.
type AIClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

type ChatSession struct {
	chat *genai.Chat
}

// ChatTurn is one prior exchange replayed into a chat session.
type ChatTurn struct {
	Role string
	Text string
}

// NewAIClient builds a Gemini client from the GEMINI_API_KEY environment
// variable. It returns (nil, nil) when the key is absent or a placeholder so
// callers can degrade to fallback data instead of failing startup.
func NewAIClient(ctx context.Context, cfg config.GeminiConfig) (*AIClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if !isUsableKey(apiKey) {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &AIClient{
		client:      client,
		model:       model,
		temperature: float32(cfg.Temperature),
	}, nil
}

// isUsableKey rejects empty keys and the placeholder values that ship in
// example env files.
func isUsableKey(key string) bool {
	if key == "" || key == "sk-..." {
		return false
	}
	return !containsPlaceholder(key)
}

func containsPlaceholder(key string) bool {
	return len(key) < 8 || key == "your-api-key" || key == "changeme"
}

// Configured reports whether a live credential is available. Safe on nil.
func (ai *AIClient) Configured() bool {
	return ai != nil && ai.client != nil
}

// GenerateContent sends one prompt with a system instruction and returns the
// raw text response.
func (ai *AIClient) GenerateContent(ctx context.Context, systemPrompt, prompt string) (string, error) {
	if !ai.Configured() {
		return "", fmt.Errorf("genai client is not configured")
	}
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](ai.temperature),
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return result.Text(), nil
}

// StartChatSession opens a multi-turn chat with the configured model, seeded
// with prior transcript turns so the model keeps conversational context.
func (ai *AIClient) StartChatSession(ctx context.Context, systemPrompt string, history []ChatTurn) (*ChatSession, error) {
	if !ai.Configured() {
		return nil, fmt.Errorf("genai client is not configured")
	}
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](ai.temperature),
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}
	chat, err := ai.client.Chats.Create(ctx, ai.model, cfg, chatHistoryContents(history))
	if err != nil {
		return nil, err
	}
	return &ChatSession{chat: chat}, nil
}

// chatHistoryContents maps stored transcript roles onto the wire roles the
// model expects. Anything that is not a user turn is replayed as the model.
func chatHistoryContents(history []ChatTurn) []*genai.Content {
	var contents []*genai.Content
	for _, turn := range history {
		role := "user"
		if turn.Role != "user" {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}
	return contents
}

func (cs *ChatSession) SendMessage(ctx context.Context, message string) (string, error) {
	result, err := cs.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
