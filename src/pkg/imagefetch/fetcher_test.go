package imagefetch

import (
	"bytes"
	"compress/gzip"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.NRGBA{R: 10, G: 120, B: 200, A: 128})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testConfig() Config {
	cfg := DefaultValueConfig()
	cfg.TimeoutSeconds = 5
	cfg.RequestsPerSecond = 1000
	cfg.Burst = 10
	return cfg
}

func TestFetchNormalizesToJPEG(t *testing.T) {
	pngBytes := encodePNG(t, 40, 20)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gzip, deflate, br", r.Header.Get("Accept-Encoding"))
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	}))
	defer server.Close()

	payload := NewFetcher(testConfig()).Fetch(context.Background(), server.URL+"/proof.png")
	require.NotNil(t, payload)
	assert.Equal(t, 40, payload.Width)
	assert.Equal(t, 20, payload.Height)
	assert.Equal(t, server.URL+"/proof.png", payload.SourceURL)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(payload.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 40, cfg.Width)
}

func TestFetchDownscalesLargeImages(t *testing.T) {
	pngBytes := encodePNG(t, 300, 150)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(pngBytes)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.MaxDimension = 100
	payload := NewFetcher(cfg).Fetch(context.Background(), server.URL)
	require.NotNil(t, payload)
	assert.Equal(t, 100, payload.Width)
	assert.Equal(t, 50, payload.Height)
}

func TestFetchDecodesCompressedBodies(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 12, 12))
	var raw bytes.Buffer
	require.NoError(t, jpeg.Encode(&raw, img, nil))

	var gzipped bytes.Buffer
	gzipWriter := gzip.NewWriter(&gzipped)
	_, _ = gzipWriter.Write(raw.Bytes())
	require.NoError(t, gzipWriter.Close())

	var brotlied bytes.Buffer
	brotliWriter := brotli.NewWriter(&brotlied)
	_, _ = brotliWriter.Write(raw.Bytes())
	require.NoError(t, brotliWriter.Close())

	tests := []struct {
		name     string
		encoding string
		body     []byte
	}{
		{name: "gzip", encoding: "gzip", body: gzipped.Bytes()},
		{name: "brotli", encoding: "br", body: brotlied.Bytes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Encoding", tt.encoding)
				_, _ = w.Write(tt.body)
			}))
			defer server.Close()

			payload := NewFetcher(testConfig()).Fetch(context.Background(), server.URL)
			require.NotNil(t, payload)
			assert.Equal(t, 12, payload.Width)
		})
	}
}

func TestFetchFailuresReturnNil(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		cfg     func(*Config)
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
		},
		{
			name: "not an image",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>login required</html>"))
			},
		},
		{
			name: "too large",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write(bytes.Repeat([]byte{0xff}, 2048))
			},
			cfg: func(c *Config) { c.MaxBytes = 1024 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			cfg := testConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			assert.Nil(t, NewFetcher(cfg).Fetch(context.Background(), server.URL))
		})
	}
}

func TestFetchUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	assert.Nil(t, NewFetcher(testConfig()).Fetch(context.Background(), url))
	assert.Nil(t, NewFetcher(testConfig()).Fetch(context.Background(), "://bad url"))
}

func TestFetchCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(encodePNG(t, 4, 4))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Nil(t, NewFetcher(testConfig()).Fetch(ctx, server.URL))
}

func TestInitializeConfigFillsMissingFields(t *testing.T) {
	cfg := InitializeConfig(&Config{MaxDimension: 800})
	assert.Equal(t, 800, cfg.MaxDimension)
	assert.Equal(t, 60, cfg.TimeoutSeconds)
	assert.Equal(t, DefaultValueConfig().UserAgent, cfg.UserAgent)

	assert.Equal(t, DefaultValueConfig(), InitializeConfig(nil))
	assert.Equal(t, 100, InitializeConfig(&Config{JPEGQuality: 250}).JPEGQuality)
}
