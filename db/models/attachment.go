package models

import (
	"time"
)

// Attachment : Attachment Model
//
// One receipt per transaction, enforced by a unique index on
// transaction_id. The blob itself lives in the configured file store;
// only its path and metadata are kept here.
type Attachment struct {
	ID            int64        `json:"id" bun:",pk,autoincrement"`
	UserID        int64        `json:"user_id" bun:",notnull"`
	User          *User        `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	TransactionID int64        `json:"transaction_id" bun:",notnull,unique"`
	Transaction   *Transaction `json:"-" bun:"rel:belongs-to,join:transaction_id=id"`
	StoragePath   string       `json:"-" bun:",notnull"`
	OriginalName  string       `json:"original_name" bun:",notnull"`
	Size          int64        `json:"size" bun:",notnull"`
	ContentType   string       `json:"content_type" bun:",notnull"`
	UploadedAt    time.Time    `json:"uploaded_at" bun:",nullzero,notnull,default:current_timestamp"`
}
