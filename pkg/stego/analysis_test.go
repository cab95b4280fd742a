package stego

import (
	"image/color"
	"math"
	"testing"
)

func TestAnalyzeMetrics(t *testing.T) {
	// Case 1: Identical Images
	// MSE should be 0, PSNR should be infinite
	orig := NewPixelBuffer(10, 10, BGR)

	result, heatmap, err := Analyze(orig, orig.Clone(), nil)
	if err != nil {
		t.Fatalf("Analyze failed for identical images: %v", err)
	}

	if result.MSE != 0 {
		t.Errorf("Expected MSE 0 for identical images, got %f", result.MSE)
	}
	if !math.IsInf(result.PSNR, 1) {
		t.Errorf("Expected PSNR +Inf for identical images, got %f", result.PSNR)
	}
	if result.ModifiedPixels != 0 || result.ModifiedChannels != 0 {
		t.Errorf("Expected no modified pixels, got %d pixels / %d channels", result.ModifiedPixels, result.ModifiedChannels)
	}
	if heatmap.NRGBAAt(5, 5) != (color.NRGBA{A: 255}) {
		t.Errorf("Unchanged pixel should be black, got %v", heatmap.NRGBAAt(5, 5))
	}

	// Case 2: Known Difference
	// Change 1 pixel in 1 channel by a value of 10.
	// MSE = (10^2) / (100 * 3) = 100 / 300 = 0.333...
	stego := orig.Clone()
	stego.Pix[0] = 10

	result, heatmap, err = Analyze(orig, stego, nil)
	if err != nil {
		t.Fatalf("Analyze failed for modified image: %v", err)
	}

	expectedMSE := 100.0 / 300.0
	if math.Abs(result.MSE-expectedMSE) > 0.0001 {
		t.Errorf("MSE calculation incorrect. Got %f, want %f", result.MSE, expectedMSE)
	}

	// PSNR = 10 * log10(255^2 / MSE)
	expectedPSNR := 10 * math.Log10((255*255)/expectedMSE)
	if math.Abs(result.PSNR-expectedPSNR) > 0.0001 {
		t.Errorf("PSNR calculation incorrect. Got %f, want %f", result.PSNR, expectedPSNR)
	}

	if result.ModifiedPixels != 1 || result.ModifiedChannels != 1 {
		t.Errorf("Expected 1 modified pixel / channel, got %d / %d", result.ModifiedPixels, result.ModifiedChannels)
	}
	if heatmap.NRGBAAt(0, 0).R == 0 {
		t.Error("Modified pixel should be highlighted in the heatmap")
	}
}

func TestAnalyzeAfterConceal(t *testing.T) {
	original := randomBuffer(t, 64, 64)
	stego, err := testCodec(t, Options{}).Conceal(original, []byte("quality check"), []byte("key"))
	if err != nil {
		t.Fatalf("Conceal failed: %v", err)
	}

	progress := &countingProgress{}
	result, _, err := Analyze(original, stego, progress)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// Two low bits change each channel by at most 3.
	if result.PSNR < 30 {
		t.Errorf("PSNR = %f dB, want at least 30", result.PSNR)
	}
	if result.ModifiedChannels == 0 {
		t.Error("Expected some modified channels after conceal")
	}
	if progress.total != 64*64 {
		t.Errorf("Progress total = %d, want %d pixels", progress.total, 64*64)
	}
}

func TestAnalyzeDimensionMismatch(t *testing.T) {
	if _, _, err := Analyze(NewPixelBuffer(10, 10, BGR), NewPixelBuffer(10, 11, BGR), nil); err == nil {
		t.Error("Expected error for mismatched dimensions")
	}
}
