package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/moneybook/moneybook.go/db/models"
)

// MaxAttachmentSize caps receipt uploads at 5 MiB.
const MaxAttachmentSize = 5 << 20

var (
	// ErrAttachmentExists : the transaction already has a receipt.
	ErrAttachmentExists = errors.New("transaction already has an attachment")
	// ErrInvalidAttachment : wrong file type or too large.
	ErrInvalidAttachment = errors.New("invalid attachment")
)

// allowedAttachmentTypes maps the sniffed content type to the extension
// the blob is stored under. The sniffed type wins over whatever the
// client claims.
var allowedAttachmentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

var allowedAttachmentExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// SaveAttachment stores a receipt for a transaction: at most one per
// transaction, jpg/png/pdf only, 5 MiB max. The content type is sniffed
// from the bytes, not taken from the upload.
func (svc *MoneybookService) SaveAttachment(ctx context.Context, userId, transactionId int64, originalName string, r io.Reader) (*models.Attachment, error) {
	transaction, err := svc.FindTransaction(ctx, userId, transactionId)
	if err != nil {
		return nil, err
	}

	exists, err := svc.DB.NewSelect().Model((*models.Attachment)(nil)).
		Where("transaction_id = ?", transaction.ID).
		Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAttachmentExists
	}

	if !allowedAttachmentExts[strings.ToLower(path.Ext(originalName))] {
		return nil, fmt.Errorf("%w: file extension not allowed", ErrInvalidAttachment)
	}

	// Read one byte past the cap so an oversized upload is detectable
	// without buffering the entire body.
	buf := &bytes.Buffer{}
	n, err := io.Copy(buf, io.LimitReader(r, MaxAttachmentSize+1))
	if err != nil {
		return nil, err
	}
	if n > MaxAttachmentSize {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrInvalidAttachment, MaxAttachmentSize)
	}

	detected := mimetype.Detect(buf.Bytes())
	ext, ok := allowedAttachmentTypes[detected.String()]
	if !ok {
		return nil, fmt.Errorf("%w: content type %s not allowed", ErrInvalidAttachment, detected.String())
	}

	token, err := randBytesFromStr(20, alphaNumBytes)
	if err != nil {
		return nil, err
	}
	uploadedAt := time.Now()
	storagePath := fmt.Sprintf("receipts/%s/%s%s",
		uploadedAt.Format("2006/01/02"), string(token), ext)

	if err := svc.FileStore.Put(ctx, storagePath, buf); err != nil {
		return nil, err
	}

	attachment := &models.Attachment{
		UserID:        userId,
		TransactionID: transaction.ID,
		StoragePath:   storagePath,
		OriginalName:  originalName,
		Size:          n,
		ContentType:   detected.String(),
		UploadedAt:    uploadedAt,
	}
	if _, err := svc.DB.NewInsert().Model(attachment).Exec(ctx); err != nil {
		// Insert lost, e.g. a concurrent upload won the unique index.
		// Drop the orphaned blob before reporting the error.
		if delErr := svc.FileStore.Delete(ctx, storagePath); delErr != nil {
			svc.Logger.Errorf("Failed to delete orphaned blob %s: %v", storagePath, delErr)
		}
		return nil, err
	}
	return attachment, nil
}

// FindAttachment looks up one attachment scoped to the owner.
func (svc *MoneybookService) FindAttachment(ctx context.Context, userId, attachmentId int64) (*models.Attachment, error) {
	attachment := &models.Attachment{}
	err := svc.DB.NewSelect().Model(attachment).
		Where("id = ? AND user_id = ?", attachmentId, userId).
		Limit(1).Scan(ctx)
	return attachment, err
}

// OpenAttachment returns the attachment record and a reader on its blob.
// The caller closes the reader.
func (svc *MoneybookService) OpenAttachment(ctx context.Context, userId, attachmentId int64) (*models.Attachment, io.ReadCloser, error) {
	attachment, err := svc.FindAttachment(ctx, userId, attachmentId)
	if err != nil {
		return nil, nil, err
	}
	reader, err := svc.FileStore.Open(ctx, attachment.StoragePath)
	if err != nil {
		return nil, nil, err
	}
	return attachment, reader, nil
}

// DeleteAttachment removes the record and the blob.
func (svc *MoneybookService) DeleteAttachment(ctx context.Context, userId, attachmentId int64) error {
	attachment, err := svc.FindAttachment(ctx, userId, attachmentId)
	if err != nil {
		return err
	}
	if _, err := svc.DB.NewDelete().Model(attachment).WherePK().Exec(ctx); err != nil {
		return err
	}
	if err := svc.FileStore.Delete(ctx, attachment.StoragePath); err != nil {
		svc.Logger.Errorf("Failed to delete blob %s: %v", attachment.StoragePath, err)
	}
	return nil
}
