package recognizer

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestResizeImage_DownscalesWideImage(t *testing.T) {
	data := encodeTestPNG(t, 400, 200)

	resized, err := ResizeImage(data, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, h := decodeSize(t, resized)
	if w != 100 || h != 50 {
		t.Errorf("expected 100x50, got %dx%d", w, h)
	}
}

func TestResizeImage_DownscalesTallImage(t *testing.T) {
	data := encodeTestPNG(t, 100, 300)

	resized, err := ResizeImage(data, 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, h := decodeSize(t, resized)
	if h != 150 || w != 50 {
		t.Errorf("expected 50x150, got %dx%d", w, h)
	}
}

func TestResizeImage_SmallImageKeepsSize(t *testing.T) {
	data := encodeTestPNG(t, 40, 30)

	resized, err := ResizeImage(data, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, h := decodeSize(t, resized)
	if w != 40 || h != 30 {
		t.Errorf("expected 40x30 unchanged, got %dx%d", w, h)
	}
}

func TestResizeImage_InvalidData(t *testing.T) {
	if _, err := ResizeImage([]byte("not an image"), 100); err == nil {
		t.Error("expected error for invalid image data")
	}
}
