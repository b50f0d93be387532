package common

import (
	"bytes"
	"context"
	"path"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectStore_UploadDestroy(t *testing.T) {
	store := TestObjectStore(t)
	ctx := context.Background()

	data := []byte("\x89PNG\r\n\x1a\nnot really a png")
	url, err := store.Upload(ctx, "blog_thumbnails", "cover.PNG", "image/png", bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, store.ObjectURL("blog_thumbnails/")))
	assert.Equal(t, ".png", path.Ext(url))

	key := strings.TrimPrefix(url, store.ObjectURL(""))
	_, err = store.client.StatObject(ctx, store.cfg.Bucket, key, minio.StatObjectOptions{})
	require.NoError(t, err)

	publicID := strings.TrimSuffix(path.Base(url), path.Ext(url))
	err = store.Destroy(ctx, "blog_thumbnails", publicID)
	require.NoError(t, err)

	_, err = store.client.StatObject(ctx, store.cfg.Bucket, key, minio.StatObjectOptions{})
	assert.Error(t, err)
}

func TestObjectStore_DestroyMissing(t *testing.T) {
	store := TestObjectStore(t)

	err := store.Destroy(context.Background(), "blog_thumbnails", "does-not-exist")
	assert.NoError(t, err)
}

func TestObjectStore_PublicURL(t *testing.T) {
	store, err := NewObjectStore(StorageConfig{
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "media",
		PublicURL: "https://cdn.example.com/",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/media/blog_thumbnails/abc.png", store.ObjectURL("blog_thumbnails/abc.png"))
}
