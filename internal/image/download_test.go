package imagepkg

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	apperr "github.com/youruser/coverapp/internal/errors"
)

func TestDownloadImage(t *testing.T) {
	var pngBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/art.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write(pngBody)
		case "/text":
			w.Write([]byte("hello"))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	var buf bytes.Buffer
	if err := Encode(&buf, noise(12, 7, 1), PNG); err != nil {
		t.Fatal(err)
	}
	pngBody = buf.Bytes()

	img, err := DownloadImage(context.Background(), srv.URL+"/art.png", 1000)
	if err != nil {
		t.Fatalf("DownloadImage: %v", err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 7 {
		t.Errorf("bounds = %v, want 12x7", img.Bounds())
	}

	tests := []struct {
		url  string
		want apperr.Code
	}{
		{srv.URL + "/text", apperr.ErrCodeImageDecode},
		{srv.URL + "/fail", apperr.ErrCodeInvalidParameter},
		{"not a url", apperr.ErrCodeInvalidParameter},
	}
	if _, err := DownloadImage(context.Background(), srv.URL+"/art.png", 12*7-1); !apperr.Is(err, apperr.ErrCodeImageDecode) {
		t.Errorf("oversized download error = %v, want IMAGE_DECODE_ERROR", err)
	}
	for _, tt := range tests {
		if _, err := DownloadImage(context.Background(), tt.url, 1000); !apperr.Is(err, tt.want) {
			t.Errorf("DownloadImage(%s) error = %v, want %s", tt.url, err, tt.want)
		}
	}
}
