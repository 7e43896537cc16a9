package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/aristath/tradebook/internal/domain"
)

// BulkImport uploads a CSV file as the multipart field "file". The body is
// streamed through a pipe so large files are never held in memory.
func (c *Client) BulkImport(ctx context.Context, filename string, r io.Reader) (domain.ImportResult, error) {
	var result domain.ImportResult

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	resp, err := c.do(ctx, http.MethodPost, "/api/bulk-import", nil, pr, mw.FormDataContentType())
	// unblock the writer if the request never consumed the body
	pr.Close()
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("failed to decode bulk import response: %w", err)
	}
	c.log.Info().
		Str("file", filename).
		Int("imported", result.SuccessfulImports).
		Int("rejected", len(result.Errors)).
		Msg("Bulk import finished")
	return result, nil
}
