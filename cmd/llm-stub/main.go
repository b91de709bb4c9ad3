// Command llm-stub is a minimal OpenAI-compatible chat endpoint for local
// development: point condensed or condense-web at it with -llm.base and
// any non-empty API key, and it answers summarization prompts with a
// deterministic digest of the submitted content.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "gemma2-9b-it"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8090"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		prompt := ""
		if len(req.Messages) > 0 {
			prompt = req.Messages[len(req.Messages)-1].Content
		}
		if !strings.Contains(prompt, "Provide a summary of the following content") {
			http.Error(w, "unexpected prompt", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": digest(prompt)}},
			},
		})
	})

	log.Printf("llm-stub listening on %s (model=%s)", addr, model)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}

// digest fakes a summary from the first words of the submitted content, so
// responses stay recognizably tied to the input.
func digest(prompt string) string {
	_, content, ok := strings.Cut(prompt, "**Content:**")
	if !ok {
		content = prompt
	}
	words := strings.Fields(content)
	if len(words) > 60 {
		words = words[:60]
	}
	if len(words) == 0 {
		return "The submitted page contained no extractable content."
	}
	return "In short: " + strings.Join(words, " ")
}
