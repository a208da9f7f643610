package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fleetdesk/config"
	"fleetdesk/internal/errs"
	"fleetdesk/internal/models"
	"fleetdesk/pkg/logger"
)

const (
	geminiBaseURL   = "https://generativelanguage.googleapis.com"
	degradedMessage = "I'm sorry, I couldn't process that question right now. Please try again in a moment."
)

// AssistantService answers free-text questions about the fleet by sending a
// serialized data snapshot plus the question to the Gemini API. Upstream
// failures never surface to callers as errors on the answer path; the reply
// degrades to an apology instead.
type AssistantService struct {
	config     config.Config
	log        logger.Logger
	httpClient *http.Client
	baseURL    string
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewAssistantService(cfg config.Config) *AssistantService {
	return &AssistantService{
		config: cfg,
		log:    logger.New("assistantService"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: geminiBaseURL,
	}
}

// Answer returns a natural-language reply to the question using the snapshot
// as grounding context. All upstream failures collapse into the degraded
// reply; the error return is reserved for invalid input.
func (s *AssistantService) Answer(
	ctx context.Context,
	snap models.FleetSnapshot,
	question string,
) (string, error) {
	log := s.log.Function("Answer")

	question = strings.TrimSpace(question)
	if question == "" {
		return "", errs.Validation("question must not be empty")
	}

	if s.config.GeminiAPIKey == "" {
		log.Warn("Assistant called without an API key configured")
		return degradedMessage, nil
	}

	reply, err := s.generate(ctx, BuildSystemPrompt(snap), question)
	if err != nil {
		log.Er("assistant upstream call failed", err)
		return degradedMessage, nil
	}

	return reply, nil
}

func (s *AssistantService) generate(
	ctx context.Context,
	systemPrompt, question string,
) (string, error) {
	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: question}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf(
		"%s/v1beta/models/%s:generateContent",
		s.baseURL,
		s.config.GeminiModel,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.config.GeminiAPIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", errs.External(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.External(err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", errs.External(
			fmt.Errorf("model endpoint returned status %d: %s", resp.StatusCode, respBody),
		)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", errs.External(fmt.Errorf("failed to decode response: %w", err))
	}
	if parsed.Error != nil {
		return "", errs.External(
			fmt.Errorf("model error %d: %s", parsed.Error.Code, parsed.Error.Message),
		)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errs.External(fmt.Errorf("model returned no candidates"))
	}

	var reply strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		reply.WriteString(part.Text)
	}

	return strings.TrimSpace(reply.String()), nil
}

// BuildSystemPrompt embeds the snapshot as labeled JSON sections inside the
// assistant's instructions. User records are excluded from the snapshot's
// JSON form and never reach the model.
func BuildSystemPrompt(snap models.FleetSnapshot) string {
	var prompt strings.Builder

	prompt.WriteString("You are FleetAI, an assistant for a vehicle fleet maintenance team. ")
	prompt.WriteString("Answer questions using only the fleet data below. ")
	prompt.WriteString("Be concise and reference vehicles by their plate. ")
	prompt.WriteString("If the data does not contain the answer, say so.\n")

	writeSection(&prompt, "VEHICLES", snap.Vehicles)
	writeSection(&prompt, "MAINTENANCE HISTORY", snap.History)
	writeSection(&prompt, "MAINTENANCE SCHEDULES", snap.Schedules)
	writeSection(&prompt, "OPEN REQUESTS", snap.Requests)
	writeSection(&prompt, "CURRENT NOTIFICATIONS", snap.Notifications)

	return prompt.String()
}

func writeSection(prompt *strings.Builder, label string, data any) {
	serialized, err := json.Marshal(data)
	if err != nil {
		serialized = []byte("[]")
	}
	fmt.Fprintf(prompt, "\n%s:\n%s\n", label, serialized)
}
