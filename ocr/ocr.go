//go:build ocr

package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"
)

// Client wraps a Tesseract instance. It is not safe for concurrent use.
type Client struct {
	client *gosseract.Client
	config Config
}

// New creates a client with the given configuration.
// The client should be closed when no longer needed to release resources.
func New(config Config) (*Client, error) {
	client := gosseract.NewClient()
	if config.Language != "" {
		if err := client.SetLanguage(config.Language); err != nil {
			client.Close()
			return nil, fmt.Errorf("ocr: language %q: %w", config.Language, err)
		}
	}
	return &Client{client: client, config: config}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Text returns all recognized text of an encoded image, trimmed.
func (c *Client) Text(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("ocr: set image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Words returns the words of an encoded image with their raster boxes.
func (c *Client) Words(imageData []byte) ([]model.Word, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("ocr: set image: %w", err)
	}
	found, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("ocr: bounding boxes: %w", err)
	}

	boxes := make([]Box, len(found))
	for i, b := range found {
		boxes[i] = Box{Rect: b.Box, Text: b.Word, Confidence: b.Confidence}
	}
	return Words(boxes, c.config.MinConfidence), nil
}
