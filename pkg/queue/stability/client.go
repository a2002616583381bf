package stability

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"adforge/pkg/queue"
)

const (
	defaultHost   = "https://api.stability.ai"
	defaultEngine = "stable-diffusion-xl-1024-v1-0"
)

// Client calls the Stability text-to-image API.
type Client struct {
	apiKey string
	host   string
	engine string
	http   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		host:   defaultHost,
		engine: defaultEngine,
		http:   &http.Client{Timeout: 2 * time.Minute},
	}
}

type textPrompt struct {
	Text string `json:"text"`
}

type generationRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    float64      `json:"cfg_scale"`
	Steps       int          `json:"steps"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Samples     int          `json:"samples"`
}

type artifact struct {
	Base64 string `json:"base64"`
}

type generationResponse struct {
	Artifacts []artifact `json:"artifacts"`
}

// Generate renders the prompt and returns one PNG reader per artifact.
func (c *Client) Generate(req *queue.Request) ([]io.Reader, error) {
	body := generationRequest{
		TextPrompts: []textPrompt{{Text: req.Prompt}},
		CfgScale:    req.CfgScale,
		Steps:       req.Steps,
		Width:       req.Width,
		Height:      req.Height,
		Samples:     req.Samples,
	}
	if body.CfgScale == 0 {
		body.CfgScale = 7.5
	}
	if body.Steps == 0 {
		body.Steps = 10
	}
	if body.Width == 0 {
		body.Width = 1024
	}
	if body.Height == 0 {
		body.Height = 1024
	}
	if body.Samples == 0 {
		body.Samples = 1
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal generation request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/generation/%s/text-to-image", c.host, c.engine)
	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build generation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("stability generation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("stability generation: status %d: %s", resp.StatusCode, msg)
	}

	var decoded generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode generation response: %w", err)
	}
	if len(decoded.Artifacts) == 0 {
		return nil, fmt.Errorf("no artifacts returned")
	}

	images := make([]io.Reader, 0, len(decoded.Artifacts))
	for i, a := range decoded.Artifacts {
		data, err := base64.StdEncoding.DecodeString(a.Base64)
		if err != nil {
			return nil, fmt.Errorf("decode artifact %d: %w", i, err)
		}
		images = append(images, bytes.NewReader(data))
	}
	return images, nil
}
