package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ajitkumar0/Imagegenenerator-sub002/core"
)

// TextToImageRequest creates a generation from a text prompt.
type TextToImageRequest struct {
	Prompt         string         `json:"prompt"`
	NegativePrompt string         `json:"negative_prompt,omitempty"`
	Model          string         `json:"model,omitempty"`
	Settings       map[string]any `json:"settings,omitempty"`
	CallbackURL    string         `json:"callback_url,omitempty"`
}

// ImageToImageRequest creates a generation from a source image plus a
// prompt. The source is referenced by the ID returned from UploadImage.
type ImageToImageRequest struct {
	Prompt         string         `json:"prompt"`
	NegativePrompt string         `json:"negative_prompt,omitempty"`
	Model          string         `json:"model,omitempty"`
	SourceImageID  string         `json:"source_image_id"`
	Strength       float64        `json:"strength,omitempty"`
	Settings       map[string]any `json:"settings,omitempty"`
	CallbackURL    string         `json:"callback_url,omitempty"`
}

// ListGenerationsOptions filters and pages the generation history.
type ListGenerationsOptions struct {
	Limit  int
	Offset int
	Status GenerationStatus
}

// TextToImage submits a text-to-image generation request.
func (c *Client) TextToImage(ctx context.Context, req TextToImageRequest) (*GenerationCreated, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, core.NewClassifiedError(core.ErrPromptRequired)
	}

	var created GenerationCreated
	err := c.Do(ctx, RequestSpec{
		Method: http.MethodPost,
		Path:   "/generate/text-to-image",
		Body:   req,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ImageToImage submits an image-to-image generation request.
func (c *Client) ImageToImage(ctx context.Context, req ImageToImageRequest) (*GenerationCreated, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, core.NewClassifiedError(core.ErrPromptRequired)
	}

	var created GenerationCreated
	err := c.Do(ctx, RequestSpec{
		Method: http.MethodPost,
		Path:   "/generate/image-to-image",
		Body:   req,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UploadImage uploads a source image for image-to-image generation as
// a multipart form.
func (c *Client) UploadImage(ctx context.Context, filename string, content io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, core.NewClassifiedError(err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, core.NewClassifiedError(err)
	}
	if err := form.Close(); err != nil {
		return nil, core.NewClassifiedError(err)
	}

	var result UploadResult
	err = c.Do(ctx, RequestSpec{
		Method:         http.MethodPost,
		Path:           "/generate/upload",
		RawBody:        buf.Bytes(),
		RawContentType: form.FormDataContentType(),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Generations lists the caller's generation history.
func (c *Client) Generations(ctx context.Context, opts ListGenerationsOptions) (*GenerationList, error) {
	query := url.Values{}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.Status != "" {
		query.Set("status", string(opts.Status))
	}

	var list GenerationList
	err := c.Do(ctx, RequestSpec{
		Method:     http.MethodGet,
		Path:       "/generate",
		Query:      query,
		Idempotent: true,
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// Generation fetches one generation by ID.
func (c *Client) Generation(ctx context.Context, id string) (*Generation, error) {
	var g Generation
	err := c.Do(ctx, RequestSpec{
		Method:     http.MethodGet,
		Path:       "/generate/" + url.PathEscape(id),
		Idempotent: true,
	}, &g)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteGeneration removes a generation and its stored results.
func (c *Client) DeleteGeneration(ctx context.Context, id string) error {
	return c.Do(ctx, RequestSpec{
		Method:     http.MethodDelete,
		Path:       "/generate/" + url.PathEscape(id),
		Idempotent: true,
	}, nil)
}

// CancelGeneration asks the backend to stop an in-flight generation.
func (c *Client) CancelGeneration(ctx context.Context, id string) error {
	return c.Do(ctx, RequestSpec{
		Method: http.MethodPost,
		Path:   "/generate/" + url.PathEscape(id) + "/cancel",
	}, nil)
}

// DownloadZip fetches an archive of the given generations' images.
func (c *Client) DownloadZip(ctx context.Context, generationIDs []string) ([]byte, error) {
	var archive []byte
	err := c.Do(ctx, RequestSpec{
		Method: http.MethodPost,
		Path:   "/generate/download-zip",
		Body:   map[string][]string{"generation_ids": generationIDs},
		// Replaying a download is harmless.
		Idempotent: true,
	}, &archive)
	if err != nil {
		return nil, err
	}
	return archive, nil
}
