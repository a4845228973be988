package fetcher

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"edaboard/api/config"
)

func TestFileFetcher(t *testing.T) {
	f := NewFSFetcher(fstest.MapFS{
		"eda_results.json":                     {Data: []byte(`{"total_invoices": 3}`)},
		"output/population_by_continent.json": {Data: []byte(`{"Asia": 1}`)},
	})
	ctx := context.Background()

	var v map[string]float64
	require.NoError(t, JSON(ctx, f, "eda_results.json", &v))
	assert.Equal(t, 3.0, v["total_invoices"])

	text, err := Text(ctx, f, "output/population_by_continent.json")
	require.NoError(t, err)
	assert.Equal(t, `{"Asia": 1}`, text)

	_, err = f.Fetch(ctx, "missing.json")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.Fetch(ctx, "../secrets.json")
	assert.Error(t, err)
}

func TestFileFetcherHonorsCanceledContext(t *testing.T) {
	f := NewFSFetcher(fstest.MapFS{"a.json": {Data: []byte(`{}`)}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, "a.json")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJSONReportsDecodeErrors(t *testing.T) {
	f := NewFSFetcher(fstest.MapFS{"bad.json": {Data: []byte(`{not json`)}})
	var v map[string]any
	err := JSON(context.Background(), f, "bad.json", &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/eda/output/top_10_populous.json":
			w.Write([]byte(`[{"Country/Territory":"China"}]`))
		case "/eda/broken.json":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f, err := NewHTTPFetcher(srv.URL+"/eda", srv.Client())
	require.NoError(t, err)
	ctx := context.Background()

	data, err := f.Fetch(ctx, "output/top_10_populous.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"Country/Territory":"China"}]`, string(data))

	_, err = f.Fetch(ctx, "nope.json")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.Fetch(ctx, "broken.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestNewHTTPFetcherRejectsBadBase(t *testing.T) {
	_, err := NewHTTPFetcher("ftp://example.com/", nil)
	assert.Error(t, err)
}

type fakeS3 struct {
	objects map[string]string
	lastKey string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.lastKey = *in.Key
	body, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewBufferString(body))}, nil
}

func TestS3Fetcher(t *testing.T) {
	client := &fakeS3{objects: map[string]string{"runs/latest/world_population.csv": "header\n"}}
	f := NewS3Fetcher(client, "eda", "runs/latest/")
	ctx := context.Background()

	text, err := Text(ctx, f, "world_population.csv")
	require.NoError(t, err)
	assert.Equal(t, "header\n", text)
	assert.Equal(t, "runs/latest/world_population.csv", client.lastKey)

	_, err = f.Fetch(ctx, "eda_results.json")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNewSelectsBackend(t *testing.T) {
	ctx := context.Background()

	f, err := New(ctx, &config.Config{ArtifactSource: config.SourceFile, ArtifactDir: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &FileFetcher{}, f)

	f, err = New(ctx, &config.Config{ArtifactSource: config.SourceHTTP, ArtifactBaseURL: "http://localhost:9999/"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &HTTPFetcher{}, f)

	_, err = New(ctx, &config.Config{ArtifactSource: "gopher"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewS3FetcherFromEnvLogsCustomEndpoint(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", dir+"/config")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", dir+"/credentials")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	t.Setenv("AWS_S3_ENDPOINT", "http://localhost:4566")

	core, logs := observer.New(zapcore.InfoLevel)
	f, err := New(context.Background(), &config.Config{ArtifactSource: config.SourceS3, S3Bucket: "eda"}, zap.New(core))
	require.NoError(t, err)
	assert.IsType(t, &S3Fetcher{}, f)

	entries := logs.FilterMessage("S3 artifact fetcher using custom endpoint").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "http://localhost:4566", entries[0].ContextMap()["endpoint"])
	assert.Equal(t, "eda", entries[0].ContextMap()["bucket"])
}
