package helpers

import (
	"fmt"
	"testing"
	"time"
)

func TestBuildImageObjectName(t *testing.T) {
	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		orderID   string
		imageType string
		ext       string
		want      string
	}{
		{"abc123", "before", "jpg", fmt.Sprintf("abc123/before_%d.jpg", now.Unix())},
		{"abc123", "after", ".png", fmt.Sprintf("abc123/after_%d.png", now.Unix())},
	}
	for _, tt := range tests {
		if got := BuildImageObjectName(tt.orderID, tt.imageType, tt.ext, now); got != tt.want {
			t.Errorf("BuildImageObjectName(%q, %q, %q) = %q, want %q", tt.orderID, tt.imageType, tt.ext, got, tt.want)
		}
	}
}
