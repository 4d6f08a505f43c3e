package chat

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/integration/llm"
	"go.uber.org/zap"
)

const (
	answerTemperature = 0.2
	answerMaxTokens   = 1024

	systemInstruction = `You are a research assistant. Answer the question using only the source excerpts below.
Mark every claim with the excerpt it came from, for example [Source 2].
If the excerpts do not contain the answer, say so plainly. Never invent information or cite a source that is not listed.`
)

var citationPattern = regexp.MustCompile(`\[Source (\d+)\]`)

type answer struct {
	Response  string
	Citations []entity.Citation
}

// generate builds the grounded prompt, asks the chat backend for an answer,
// and resolves its [Source N] markers back to the retrieved chunks.
func (uc *ChatUsecase) generate(
	ctx context.Context,
	client llm.Client,
	query string,
	retrieved []entity.ScoredChunk,
	history []*entity.ChatTurn,
	docNames map[string]string,
	modelOverride string,
) (*answer, error) {
	messages := make([]llm.Message, 0, len(history)+1)
	for _, turn := range history {
		role := llm.RoleUser
		if turn.Role == entity.RoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: query})

	response, err := client.Complete(ctx, &llm.CompletionRequest{
		System:      buildSystemPrompt(retrieved, docNames),
		Messages:    messages,
		Model:       modelOverride,
		Temperature: answerTemperature,
		MaxTokens:   answerMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	citations := extractCitations(response, retrieved)

	ctxzap.Debug(ctx, "answer generated",
		zap.Int("history_turns", len(history)),
		zap.Int("citation_count", len(citations)),
	)

	return &answer{Response: response, Citations: citations}, nil
}

// buildSystemPrompt enumerates every document in the project, retrieved or
// not, so the model can answer questions about what it has access to, then
// the retrieved excerpts, each tagged with the marker the model must cite
// it by.
func buildSystemPrompt(retrieved []entity.ScoredChunk, docNames map[string]string) string {
	var sb strings.Builder
	sb.WriteString(systemInstruction)

	sb.WriteString("\n\nDocuments:\n")
	seen := make(map[string]bool)
	names := make([]string, 0, len(docNames))
	for _, name := range docNames {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString("- ")
		sb.WriteString(name)
		sb.WriteString("\n")
	}

	sb.WriteString("\nSource excerpts:\n")
	for i, sc := range retrieved {
		fmt.Fprintf(&sb, "\n[Source %d] (document: %s)\n%s\n", i+1, sc.DocumentName, sc.Chunk.Content)
	}

	return sb.String()
}

// extractCitations maps every [Source N] marker in the response to the Nth
// retrieved chunk (1-indexed). Out-of-range markers are ignored; repeated
// references to the same chunk collapse into the first occurrence.
func extractCitations(response string, retrieved []entity.ScoredChunk) []entity.Citation {
	matches := citationPattern.FindAllStringSubmatch(response, -1)

	citations := make([]entity.Citation, 0, len(matches))
	cited := make(map[string]bool)

	for _, match := range matches {
		index, err := strconv.Atoi(match[1])
		if err != nil || index < 1 || index > len(retrieved) {
			continue
		}

		sc := retrieved[index-1]
		if cited[sc.Chunk.ID] {
			continue
		}
		cited[sc.Chunk.ID] = true

		citations = append(citations, entity.NewCitation(index, sc))
	}

	return citations
}
