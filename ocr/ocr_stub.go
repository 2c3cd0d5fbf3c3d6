//go:build !ocr

package ocr

import "github.com/BusinessSupport24/HerramientaCuracionAutomatica/model"

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

// New returns ErrOCRNotEnabled.
func New(config Config) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client.
// It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// Text returns ErrOCRNotEnabled.
func (c *Client) Text(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// Words returns ErrOCRNotEnabled.
func (c *Client) Words(imageData []byte) ([]model.Word, error) {
	return nil, ErrOCRNotEnabled
}
