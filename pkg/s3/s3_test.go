package s3

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL_MinIO(t *testing.T) {
	url := ObjectURL("http://localhost:9000", "us-east-1", "vidtube-media", "videos/u1/a.mp4", true)
	assert.Equal(t, "http://localhost:9000/vidtube-media/videos/u1/a.mp4", url)

	url = ObjectURL("minio.example.com", "", "media", "k", false)
	assert.Equal(t, "https://minio.example.com/media/k", url)
}

func TestObjectURL_AWS(t *testing.T) {
	assert.Equal(t, "https://media.s3.eu-west-1.amazonaws.com/k", ObjectURL("", "eu-west-1", "media", "k", false))
	assert.Equal(t, "https://media.s3.us-east-1.amazonaws.com/k", ObjectURL("", "", "media", "k", false))
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("thumbnails", "user-1", "Cover.PNG")

	assert.True(t, strings.HasPrefix(key, "thumbnails/user-1/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.NotEqual(t, key, ObjectKey("thumbnails", "user-1", "Cover.PNG"))
}

func TestKeyFromURL(t *testing.T) {
	minio := ObjectURL("http://localhost:9000", "", "vidtube-media", "", true)
	key, ok := KeyFromURL(minio, ObjectURL("http://localhost:9000", "", "vidtube-media", "videos/u1/a.mp4", true))
	assert.True(t, ok)
	assert.Equal(t, "videos/u1/a.mp4", key)

	aws := ObjectURL("", "eu-west-1", "media", "", false)
	key, ok = KeyFromURL(aws, "https://media.s3.eu-west-1.amazonaws.com/thumbnails/u1/b.png")
	assert.True(t, ok)
	assert.Equal(t, "thumbnails/u1/b.png", key)

	_, ok = KeyFromURL(minio, "https://cdn.example.com/videos/u1/a.mp4")
	assert.False(t, ok)
	_, ok = KeyFromURL(minio, minio)
	assert.False(t, ok)
}
