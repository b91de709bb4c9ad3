package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// promptTemplate is the fixed instruction sent with every summarization
// call. The extracted content is substituted for the single %s verb.
const promptTemplate = "Provide a summary of the following content in 300 words for the below content:\n**Content:** %s"

// Generator produces a summary for one combined input blob with a single
// chat completion call. All content goes into one request; there is no
// chunking, no map-reduce, and no retry.
type Generator struct {
	Client Client
	Model  string
}

// Generate sends text under the fixed prompt and returns the model output.
func (g *Generator) Generate(ctx context.Context, text string) (string, error) {
	if g.Client == nil {
		return "", errors.New("generator not configured")
	}
	model := g.Model
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(promptTemplate, text)},
		},
		N: 1,
	}
	resp, err := g.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", errors.New("model returned an empty summary")
	}
	return out, nil
}
