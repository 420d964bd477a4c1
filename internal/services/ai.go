package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

var ErrAssistantUnavailable = errors.New("task assistant is not configured")

// TaskSuggester extracts task descriptions from free text.
type TaskSuggester interface {
	SuggestTasks(ctx context.Context, text string) ([]string, error)
}

// ChatCompleter is the slice of the OpenAI client the assistant uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type AIService struct {
	client ChatCompleter
	model  string
	now    func() time.Time
}

type suggestedTask struct {
	Description string `json:"description"`
}

func NewAIService(apiKey string) *AIService {
	return NewAIServiceWithClient(openai.NewClient(apiKey))
}

// NewAIServiceWithClient builds the assistant around an existing chat client.
func NewAIServiceWithClient(client ChatCompleter) *AIService {
	return &AIService{
		client: client,
		model:  openai.GPT4o,
		now:    time.Now,
	}
}

// SuggestTasks analyzes text and extracts to-do descriptions using OpenAI GPT
func (s *AIService) SuggestTasks(ctx context.Context, text string) ([]string, error) {
	if s.client == nil {
		return nil, ErrAssistantUnavailable
	}

	currentTime := s.now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`You are a task extraction assistant. Extract concrete to-do items from the text below.

Current time: %s

Text:
%s

Return a JSON array of the extracted tasks in this format:
[
  {
    "description": "short, actionable description of the task"
  }
]

Rules:
- Return an empty array [] if the text contains no tasks
- Turn relative deadlines ("tomorrow", "next week") into concrete dates inside the description
- Return JSON only, without any explanation`, currentTime, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)

	var tasks []suggestedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	descriptions := make([]string, 0, len(tasks))
	for _, t := range tasks {
		descriptions = append(descriptions, t.Description)
	}
	return descriptions, nil
}

// stripCodeFence removes a surrounding ```json fence if the model added one.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimPrefix(content, "json")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
