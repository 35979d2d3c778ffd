package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_PutOverwritesAndDeletes(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads/")
	ctx := context.Background()

	first, err := l.Put(ctx, strings.NewReader("v1"), PutInput{Key: "productos/a.png"})
	require.NoError(t, err)
	assert.False(t, first.Replaced)
	res, err := l.Put(ctx, strings.NewReader("v2"), PutInput{Key: "productos/a.png"})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/productos/a.png", res.URL)
	assert.True(t, res.Replaced)

	b, err := os.ReadFile(filepath.Join(dir, "productos", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b))

	require.NoError(t, l.Delete(ctx, "productos/a.png"))
	_, err = os.Stat(filepath.Join(dir, "productos", "a.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocal_RejectsEscapingKeys(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads")
	for _, key := range []string{"", "../a.png", "productos/../../a.png", "/"} {
		_, err := l.Put(context.Background(), strings.NewReader("x"), PutInput{Key: key})
		assert.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
	}
}

type fakeS3 struct {
	in      *s3.PutObjectInput
	body    string
	err     error
	deleted *s3.DeleteObjectInput
	headErr error
}

func (f *fakeS3) Upload(ctx context.Context, in *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.in = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	if f.err != nil {
		return nil, f.err
	}
	return &manager.UploadOutput{}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = in
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3_Put(t *testing.T) {
	fake := &fakeS3{headErr: &types.NotFound{}}
	s := newS3(fake, fake, "catalogo", "https://cdn.example.cl/")

	res, err := s.Put(context.Background(), strings.NewReader("img"), PutInput{Key: "productos/a.png", ContentType: "image/png"})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.cl/productos/a.png", res.URL)
	assert.Equal(t, "catalogo", aws.ToString(fake.in.Bucket))
	assert.Equal(t, "productos/a.png", aws.ToString(fake.in.Key))
	assert.Equal(t, "image/png", aws.ToString(fake.in.ContentType))
	assert.Equal(t, "img", fake.body)
	assert.False(t, res.Replaced)

	require.NoError(t, s.Delete(context.Background(), "productos/a.png"))
	assert.Equal(t, "productos/a.png", aws.ToString(fake.deleted.Key))
}

func TestS3_PutReportsReplaced(t *testing.T) {
	for name, headErr := range map[string]error{
		"existing":       nil,
		"head forbidden": errors.New("Forbidden"),
	} {
		t.Run(name, func(t *testing.T) {
			fake := &fakeS3{headErr: headErr}
			s := newS3(fake, fake, "catalogo", "https://cdn.example.cl")

			res, err := s.Put(context.Background(), strings.NewReader("img"), PutInput{Key: "productos/a.png"})
			require.NoError(t, err)
			assert.True(t, res.Replaced)
		})
	}
}

func TestS3_PutError(t *testing.T) {
	fake := &fakeS3{err: errors.New("AccessDenied")}
	s := newS3(fake, fake, "catalogo", "https://cdn.example.cl")

	_, err := s.Put(context.Background(), strings.NewReader("img"), PutInput{Key: "productos/a.png"})
	require.Error(t, err)
	assert.Nil(t, fake.in.ContentType)
}

type fakeBlob struct {
	container, name, contentType, body string
	deleted                            string
}

func (f *fakeBlob) UploadStream(ctx context.Context, containerName, blobName string, body io.Reader, o *azblob.UploadStreamOptions) (azblob.UploadStreamResponse, error) {
	f.container, f.name = containerName, blobName
	if o != nil && o.HTTPHeaders != nil && o.HTTPHeaders.BlobContentType != nil {
		f.contentType = *o.HTTPHeaders.BlobContentType
	}
	b, _ := io.ReadAll(body)
	f.body = string(b)
	return azblob.UploadStreamResponse{}, nil
}

func (f *fakeBlob) DeleteBlob(ctx context.Context, containerName, blobName string, o *azblob.DeleteBlobOptions) (azblob.DeleteBlobResponse, error) {
	f.deleted = blobName
	return azblob.DeleteBlobResponse{}, nil
}

func TestAzure_PutAndDelete(t *testing.T) {
	fake := &fakeBlob{}
	a := newAzure(fake, "imagenes", "https://cuenta.blob.core.windows.net/imagenes/")

	res, err := a.Put(context.Background(), strings.NewReader("img"), PutInput{Key: "productos/b.webp", ContentType: "image/webp"})
	require.NoError(t, err)

	assert.Equal(t, "https://cuenta.blob.core.windows.net/imagenes/productos/b.webp", res.URL)
	assert.Equal(t, "imagenes", fake.container)
	assert.Equal(t, "productos/b.webp", fake.name)
	assert.Equal(t, "image/webp", fake.contentType)
	assert.Equal(t, "img", fake.body)
	assert.True(t, res.Replaced)

	require.NoError(t, a.Delete(context.Background(), "productos/b.webp"))
	assert.Equal(t, "productos/b.webp", fake.deleted)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("LOCAL_UPLOAD_DIR", t.TempDir())
	res, err := FromEnv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "local", res.Driver)

	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("S3_BUCKET", "")
	_, err = FromEnv(context.Background())
	assert.Error(t, err)

	t.Setenv("STORAGE_DRIVER", "azure")
	t.Setenv("AZURE_CONTAINER", "")
	_, err = FromEnv(context.Background())
	assert.Error(t, err)

	t.Setenv("STORAGE_DRIVER", "ftp")
	_, err = FromEnv(context.Background())
	assert.Error(t, err)
}
