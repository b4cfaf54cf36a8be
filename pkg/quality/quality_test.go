package quality

import (
	"image/color"
	"testing"
)

// TestLookup 测试各品质等级返回正确的颜色和标签
func TestLookup(t *testing.T) {
	tests := []struct {
		tier      Tier
		wantLabel string
		wantColor color.RGBA
	}{
		{TierPoor, "Poor", color.RGBA{R: 0x9D, G: 0x9D, B: 0x9D, A: 0xFF}},
		{TierCommon, "Common", color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
		{TierUncommon, "Uncommon", color.RGBA{R: 0x1E, G: 0xFF, B: 0x00, A: 0xFF}},
		{TierRare, "Rare", color.RGBA{R: 0x00, G: 0x70, B: 0xDD, A: 0xFF}},
		{TierEpic, "Epic", color.RGBA{R: 0xA3, G: 0x35, B: 0xEE, A: 0xFF}},
		{TierLegendary, "Legendary", color.RGBA{R: 0xFF, G: 0x80, B: 0x00, A: 0xFF}},
		{TierArtifact, "Artifact", color.RGBA{R: 0xE6, G: 0xCC, B: 0x80, A: 0xFF}},
		{TierHeirloom, "Heirloom", color.RGBA{R: 0x00, G: 0xCC, B: 0xFF, A: 0xFF}},
	}

	for _, tt := range tests {
		info := Lookup(tt.tier)
		if info.Label != tt.wantLabel {
			t.Errorf("Lookup(%d).Label: got %q, want %q", tt.tier, info.Label, tt.wantLabel)
		}
		if info.Color != tt.wantColor {
			t.Errorf("Lookup(%d).Color: got %v, want %v", tt.tier, info.Color, tt.wantColor)
		}
	}
}

// TestLookupOutOfRange 测试超出范围的等级回退到 Common
func TestLookupOutOfRange(t *testing.T) {
	tests := []Tier{-1, -100, 8, 99}

	for _, tier := range tests {
		info := Lookup(tier)
		if info.Label != "Common" {
			t.Errorf("Lookup(%d): got %q, want fallback to Common", tier, info.Label)
		}
	}
}

// TestColorOf 测试 ColorOf 与 Lookup 返回一致
func TestColorOf(t *testing.T) {
	if ColorOf(TierEpic) != Lookup(TierEpic).Color {
		t.Error("ColorOf(TierEpic) should equal Lookup(TierEpic).Color")
	}
}
