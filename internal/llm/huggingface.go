package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const hfBaseURL = "https://api-inference.huggingface.co/models"

// HuggingFaceClient talks to the Hugging Face Inference API.
type HuggingFaceClient struct {
	apiKey string
	model  string
	client *http.Client
	base   string
}

func NewHuggingFaceClient(apiKey, model string, timeout time.Duration) *HuggingFaceClient {
	if model == "" {
		model = "google/flan-t5-large"
	}
	return &HuggingFaceClient{
		apiKey: apiKey,
		model:  model,
		client: newHTTPClient(timeout),
		base:   hfBaseURL,
	}
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens int `json:"max_new_tokens"`
}

func (c *HuggingFaceClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("huggingface: api key not set")
	}
	body, err := json.Marshal(hfRequest{Inputs: prompt, Parameters: hfParameters{MaxNewTokens: 800}})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/"+c.model, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("huggingface: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	text, ok := hfText(raw)
	if !ok || text == "" {
		return "", errors.New("huggingface: no generated text in response")
	}
	return text, nil
}

// hfText handles the response shapes the inference API is known to return:
// a list of {"generated_text"}, a bare {"generated_text"}, or
// {"outputs": [{"text"}]}.
func hfText(raw []byte) (string, bool) {
	var list []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0].GeneratedText, true
	}
	var obj struct {
		GeneratedText string `json:"generated_text"`
		Outputs       []struct {
			Text string `json:"text"`
		} `json:"outputs"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.GeneratedText != "" {
			return obj.GeneratedText, true
		}
		if len(obj.Outputs) > 0 {
			return obj.Outputs[0].Text, true
		}
	}
	return "", false
}
