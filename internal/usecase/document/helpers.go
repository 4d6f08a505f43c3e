package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/paperdesk/research-backend/internal/entity"
	"github.com/paperdesk/research-backend/internal/pkg/chunker"
	"github.com/paperdesk/research-backend/internal/pkg/extractor"
	"github.com/paperdesk/research-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

// loadSource reads the PDF bytes from the upload or the external URL.
// external reports whether the document lives outside the file store.
func (uc *DocumentUsecase) loadSource(ctx context.Context, req *entity.IngestRequest) (content []byte, filename string, external bool, err error) {
	if req.File != nil {
		content, err = uc.readUpload(req)
		if err != nil {
			return nil, "", false, err
		}
		return content, validator.SanitizeFilename(req.File.Filename), false, nil
	}

	if err := uc.validator.ValidateURL(req.URL); err != nil {
		return nil, "", false, err
	}

	content, err = uc.downloader.Download(ctx, req.URL, uc.cfg.MaxFileSize)
	if err != nil {
		return nil, "", false, fmt.Errorf("%w: download %s: %v", entity.ErrInvalidFile, req.URL, err)
	}

	ctxzap.Debug(ctx, "document downloaded",
		zap.String("url", req.URL),
		zap.Int("size", len(content)),
	)

	return content, urlFilename(req), true, nil
}

func (uc *DocumentUsecase) readUpload(req *entity.IngestRequest) ([]byte, error) {
	if err := uc.validator.ValidateUpload(req.File); err != nil {
		return nil, err
	}

	src, err := req.File.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open upload: %v", entity.ErrInvalidFile, err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: read upload: %v", entity.ErrInvalidFile, err)
	}

	return content, nil
}

// loadStored fetches the bytes behind an existing document, from disk or
// by re-downloading an external URL.
func (uc *DocumentUsecase) loadStored(ctx context.Context, doc *entity.Document) ([]byte, error) {
	if uc.fileStore.Owns(doc.Location) {
		content, err := uc.fileStore.Read(doc.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: read stored file: %v", entity.ErrInvalidFile, err)
		}
		return content, nil
	}

	content, err := uc.downloader.Download(ctx, doc.Location, uc.cfg.MaxFileSize)
	if err != nil {
		return nil, fmt.Errorf("%w: download %s: %v", entity.ErrInvalidFile, doc.Location, err)
	}

	return content, nil
}

func (uc *DocumentUsecase) extract(ctx context.Context, content []byte) (*extractor.Result, error) {
	result, err := extractor.Extract(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	ctxzap.Debug(ctx, "text extracted",
		zap.Int("page_count", result.PageCount),
		zap.Int("text_len", len(result.Text)),
	)

	return result, nil
}

func (uc *DocumentUsecase) split(text string) []string {
	return chunker.Split(text, uc.cfg.ChunkSize, uc.cfg.ChunkOverlap)
}

// embed resolves the project's credential and embeds all pieces. A missing
// credential is not an error; the no-op provider yields no vectors.
func (uc *DocumentUsecase) embed(ctx context.Context, projectID string, pieces []string) ([][]float32, error) {
	cred, err := uc.credentials.Get(ctx, projectID)
	if err != nil && !errors.Is(err, entity.ErrCredentialNotConfigured) {
		return nil, fmt.Errorf("lookup credential: %w", err)
	}

	provider := uc.embeddings.ForCredential(cred)
	return provider.EmbedBatch(ctx, pieces)
}

func urlFilename(req *entity.IngestRequest) string {
	if req.Filename != "" {
		return validator.SanitizeFilename(req.Filename)
	}

	if u, err := url.Parse(req.URL); err == nil {
		if base := path.Base(u.Path); base != "" && base != "/" && base != "." {
			return validator.SanitizeFilename(base)
		}
	}

	return "document.pdf"
}
