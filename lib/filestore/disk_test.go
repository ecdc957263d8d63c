package filestore

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	store := NewDiskStore(t.TempDir())
	ctx := context.Background()

	err := store.Put(ctx, "receipts/2026/01/29/receipt.jpg", strings.NewReader("jpegbytes"))
	require.NoError(t, err)

	r, err := store.Open(ctx, "receipts/2026/01/29/receipt.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	r.Close()
	assert.Equal(t, "jpegbytes", string(data))

	require.NoError(t, store.Delete(ctx, "receipts/2026/01/29/receipt.jpg"))
	_, err = store.Open(ctx, "receipts/2026/01/29/receipt.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiskStoreDeleteMissingIsNoop(t *testing.T) {
	store := NewDiskStore(t.TempDir())
	assert.NoError(t, store.Delete(context.Background(), "no/such/file"))
}
