package s3storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectPutter struct {
	mock.Mock
}

func (m *MockObjectPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func TestPut(t *testing.T) {
	client := &MockObjectPutter{}
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "proofs" &&
			aws.ToString(in.Key) == "photos/2025/03/01/a.jpg" &&
			aws.ToString(in.ContentType) == "image/jpeg" &&
			aws.ToInt64(in.ContentLength) == 3
	})).Return(&s3.PutObjectOutput{}, nil).Once()
	storage := newStorage(client, Config{Bucket: "proofs", Region: "ap-southeast-1"})

	uri, err := storage.Put(context.Background(), "/photos/2025/03/01/a.jpg", "image/jpeg", strings.NewReader("abc"), 3)

	require.NoError(t, err)
	assert.Equal(t, "https://proofs.s3.ap-southeast-1.amazonaws.com/photos/2025/03/01/a.jpg", uri)
	client.AssertExpectations(t)
}

func TestPut_Failure(t *testing.T) {
	client := &MockObjectPutter{}
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied")).Once()
	storage := newStorage(client, Config{Bucket: "proofs", Region: "ap-southeast-1"})

	uri, err := storage.Put(context.Background(), "photos/a.jpg", "image/jpeg", strings.NewReader("abc"), 3)

	assert.Empty(t, uri)
	assert.ErrorContains(t, err, "access denied")
}

func TestPut_EmptyKey(t *testing.T) {
	client := &MockObjectPutter{}
	storage := newStorage(client, Config{Bucket: "proofs", Region: "ap-southeast-1"})

	_, err := storage.Put(context.Background(), "/", "image/jpeg", strings.NewReader("abc"), 3)

	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "aws", cfg: Config{Bucket: "b", Region: "eu-west-1"}, want: "https://b.s3.eu-west-1.amazonaws.com"},
		{name: "custom endpoint", cfg: Config{Bucket: "b", Region: "us-east-1", Endpoint: "http://minio:9000/"}, want: "http://minio:9000/b"},
		{name: "public url wins", cfg: Config{Bucket: "b", Region: "us-east-1", Endpoint: "http://minio:9000", PublicBaseURL: "https://cdn.example.com/"}, want: "https://cdn.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newStorage(&MockObjectPutter{}, tt.cfg).baseURL)
		})
	}
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
