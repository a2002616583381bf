package adgen

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/webp"

	"adforge/pkg/campaign"
	"adforge/pkg/queue"
	"adforge/pkg/utils"
)

// Orchestrator drives the full asset workflow for a batch of campaigns:
// text assets through the creative agent, the image through the
// generation queue, everything saved under one directory per campaign.
type Orchestrator struct {
	creative *CreativeAgent
	queue    queue.Queue
	dir      string
	logger   *log.Logger
}

// NewOrchestrator builds an orchestrator writing under dir. A nil queue
// skips image generation and produces text assets only.
func NewOrchestrator(creative *CreativeAgent, q queue.Queue, dir string) *Orchestrator {
	if dir == "" {
		dir = "outputs"
	}
	return &Orchestrator{
		creative: creative,
		queue:    q,
		dir:      dir,
		logger:   log.Default().With("agent", "adgen"),
	}
}

// CampaignResult records where one campaign's assets landed. ImageError
// is set when the image could not be rendered; the text assets are still
// saved and reported.
type CampaignResult struct {
	CampaignName string            `json:"campaign_name"`
	CampaignDir  string            `json:"campaign_dir"`
	Assets       map[string]string `json:"assets"`
	ImageError   string            `json:"image_error,omitempty"`
}

type generatedAssets struct {
	TaglinePath string `json:"tagline_path"`
	StoryPath   string `json:"story_path"`
	ImagePath   string `json:"image_path,omitempty"`
	Tagline     string `json:"tagline"`
	Story       string `json:"story"`
	ImagePrompt string `json:"image_prompt"`
	ImageError  string `json:"image_error,omitempty"`
}

type campaignDetails struct {
	Campaign *campaign.Record `json:"campaign"`
	Assets   generatedAssets  `json:"generated_assets"`
}

// GenerateCampaignAssets processes every record, skipping campaigns whose
// generation fails rather than aborting the batch.
func (o *Orchestrator) GenerateCampaignAssets(ctx context.Context, records []*campaign.Record, forceFresh bool) ([]CampaignResult, error) {
	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	results := make([]CampaignResult, 0, len(records))
	for _, r := range records {
		result, err := o.GenerateSingle(ctx, r, forceFresh)
		if err != nil {
			o.logger.Error("campaign asset generation failed", "campaign", r.Name(), "err", err)
			continue
		}
		results = append(results, *result)
	}
	if len(results) == 0 && len(records) > 0 {
		return nil, fmt.Errorf("every campaign failed asset generation")
	}
	return results, nil
}

// GenerateSingle produces and saves all assets for one campaign.
func (o *Orchestrator) GenerateSingle(ctx context.Context, r *campaign.Record, forceFresh bool) (*CampaignResult, error) {
	dir, err := o.campaignDir(r.Name())
	if err != nil {
		return nil, err
	}

	assets, err := o.creative.GenerateAssets(ctx, r, forceFresh)
	if err != nil {
		return nil, err
	}

	taglinePath, err := saveTextAsset(dir, "tagline.txt", assets.Tagline)
	if err != nil {
		return nil, err
	}
	storyPath, err := saveTextAsset(dir, "story.txt", assets.Story)
	if err != nil {
		return nil, err
	}

	// An image failure never discards the text assets already on disk.
	var imagePath, imageErr string
	if o.queue != nil {
		imagePath, err = o.generateImage(ctx, dir, assets.ImagePrompt)
		if err != nil {
			o.logger.Error("image generation failed, keeping text assets",
				"campaign", r.Name(), "err", err)
			imagePath, imageErr = "", err.Error()
		}
	}

	details := campaignDetails{
		Campaign: r,
		Assets: generatedAssets{
			TaglinePath: taglinePath,
			StoryPath:   storyPath,
			ImagePath:   imagePath,
			Tagline:     assets.Tagline,
			Story:       assets.Story,
			ImagePrompt: assets.ImagePrompt,
			ImageError:  imageErr,
		},
	}
	detailsPath := filepath.Join(dir, "campaign_details.json")
	if err := utils.Save(detailsPath, details); err != nil {
		return nil, fmt.Errorf("save campaign details: %w", err)
	}

	result := CampaignResult{
		CampaignName: r.Name(),
		CampaignDir:  dir,
		Assets: map[string]string{
			"tagline": taglinePath,
			"story":   storyPath,
			"details": detailsPath,
		},
		ImageError: imageErr,
	}
	if imagePath != "" {
		result.Assets["image"] = imagePath
	}
	return &result, nil
}

func (o *Orchestrator) campaignDir(name string) (string, error) {
	sanitized := utils.SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "campaign"
	}
	timestamp := time.Now().UTC().Format("20060102_150405")
	dir := filepath.Join(o.dir, fmt.Sprintf("%s_%s", sanitized, timestamp))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create campaign dir: %w", err)
	}
	return dir, nil
}

func saveTextAsset(dir, filename, content string) (string, error) {
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("save %s: %w", filename, err)
	}
	return path, nil
}

// generateImage renders the prompt through the queue and saves the first
// artifact as a WebP.
func (o *Orchestrator) generateImage(ctx context.Context, dir, prompt string) (string, error) {
	respCh, errCh, err := o.queue.Add(&queue.Request{Prompt: prompt})
	if err != nil {
		return "", err
	}

	select {
	case images, ok := <-respCh:
		if !ok || len(images) == 0 {
			if err := <-errCh; err != nil {
				return "", err
			}
			return "", fmt.Errorf("no image returned")
		}
		return saveToWebP(images[0], dir, "campaign_image.webp")
	case err := <-errCh:
		if err != nil {
			return "", err
		}
		images := <-respCh
		if len(images) == 0 {
			return "", fmt.Errorf("no image returned")
		}
		return saveToWebP(images[0], dir, "campaign_image.webp")
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// saveToWebP decodes the reader (PNG expected, any registered format
// accepted) and writes it as a high-quality WebP.
func saveToWebP(r io.Reader, dir, filename string) (string, error) {
	imgBytes, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image data: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		var err2 error
		img, _, err2 = image.Decode(bytes.NewReader(imgBytes))
		if err2 != nil {
			return "", fmt.Errorf("decode image (png: %v, generic: %v)", err, err2)
		}
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, webp.Options{Lossless: false, Quality: 100}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
