package systems

import (
	"hash/fnv"
	"image/color"

	"github.com/decker502/lootfeed/pkg/config"
	"github.com/decker502/lootfeed/pkg/notify"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// NotificationRenderSystem 通知渲染系统
//
// 职责：
//   - 每帧从配置重新推导每条活动通知的位置与不透明度
//   - 渲染可选的半透明背景条与高品质辉光
//   - 渲染图标与标签文字
//   - 为事件管线预先测量内容宽度
//
// 渲染完全无状态：不缓存任何位置，配置变化在下一帧立即生效。
type NotificationRenderSystem struct {
	faceSource *text.GoTextFaceSource // 标签字体来源
	faceCache  map[float64]*text.GoTextFace
	iconImages map[string]*ebiten.Image // 图标占位图缓存：图标标识 → 图像
}

// NewNotificationRenderSystem 创建通知渲染系统
//
// 参数：
//   - faceSource: 标签字体来源（nil 时跳过文字渲染）
func NewNotificationRenderSystem(faceSource *text.GoTextFaceSource) *NotificationRenderSystem {
	return &NotificationRenderSystem{
		faceSource: faceSource,
		faceCache:  make(map[float64]*text.GoTextFace),
		iconImages: make(map[string]*ebiten.Image),
	}
}

// MeasureContent 测量一条通知的内容宽度
//
// 内容宽度 = 图标宽度 + 图标文字间距 + 文字宽度，
// 用于锚点对齐与堆叠碰撞检测。
func (s *NotificationRenderSystem) MeasureContent(cfg notify.Config, label string) float64 {
	textWidth := 0.0
	if face := s.face(cfg.FontSize); face != nil {
		textWidth, _ = text.Measure(label, face, 0)
	}
	return cfg.IconSize + config.IconTextGap + textWidth
}

// Draw 渲染所有活动通知
//
// 参数：
//   - screen: 目标画布
//   - cfg: 当前配置快照
//   - toasts: 活动集（插入序）
func (s *NotificationRenderSystem) Draw(screen *ebiten.Image, cfg notify.Config, toasts []*notify.Toast) {
	face := s.face(cfg.FontSize)

	for _, t := range toasts {
		x, y := notify.PositionOf(cfg, t)
		alpha := notify.AlphaOf(cfg, t.Elapsed)
		if alpha <= 0 {
			continue
		}

		rowHeight := cfg.IconSize
		if cfg.FontSize > rowHeight {
			rowHeight = cfg.FontSize
		}

		// 1. 背景条
		if cfg.ShowBackground {
			bgX := float32(x - config.BackgroundPaddingX)
			bgY := float32(y - rowHeight/2 - config.BackgroundPaddingY)
			bgW := float32(t.ContentWidth + config.BackgroundPaddingX*2)
			bgH := float32(rowHeight + config.BackgroundPaddingY*2)
			bgAlpha := uint8(cfg.BackgroundAlpha * alpha * 255)
			vector.DrawFilledRect(screen, bgX, bgY, bgW, bgH, color.RGBA{0, 0, 0, bgAlpha}, false)
		}

		// 2. 高品质辉光：品质色的外扩描边
		if t.Glow {
			glowAlpha := uint8(alpha * 96)
			glow := color.RGBA{t.Color.R, t.Color.G, t.Color.B, glowAlpha}
			gx := float32(x - config.BackgroundPaddingX - 2)
			gy := float32(y - rowHeight/2 - config.BackgroundPaddingY - 2)
			gw := float32(t.ContentWidth + config.BackgroundPaddingX*2 + 4)
			gh := float32(rowHeight + config.BackgroundPaddingY*2 + 4)
			vector.StrokeRect(screen, gx, gy, gw, gh, 2, glow, false)
		}

		// 3. 图标
		if t.Icon != "" {
			icon := s.iconImage(t.Icon)
			iconBounds := icon.Bounds()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(cfg.IconSize/float64(iconBounds.Dx()), cfg.IconSize/float64(iconBounds.Dy()))
			op.GeoM.Translate(x, y-cfg.IconSize/2)
			op.ColorScale.ScaleAlpha(float32(alpha))
			screen.DrawImage(icon, op)
		}

		// 4. 标签文字
		if face != nil && t.Text != "" {
			op := &text.DrawOptions{}
			op.LayoutOptions.PrimaryAlign = text.AlignStart
			op.LayoutOptions.SecondaryAlign = text.AlignCenter
			op.GeoM.Translate(x+cfg.IconSize+config.IconTextGap, y)
			op.ColorScale.ScaleWithColor(t.Color)
			op.ColorScale.ScaleAlpha(float32(alpha))
			text.Draw(screen, t.Text, face, op)
		}
	}
}

// IconImage 返回图标标识对应的图像（供其它 UI 面复用图标缓存）
func (s *NotificationRenderSystem) IconImage(icon string) *ebiten.Image {
	return s.iconImage(icon)
}

// face 返回指定字号的字体面（按字号缓存）
func (s *NotificationRenderSystem) face(size float64) *text.GoTextFace {
	if s.faceSource == nil {
		return nil
	}
	if f, ok := s.faceCache[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: s.faceSource, Size: size}
	s.faceCache[size] = f
	return f
}

// iconImage 返回图标标识对应的占位图
//
// 客户端环境里图标由资源包提供；这里按图标标识哈希出一个
// 稳定的纯色方块，同一标识总得到同一颜色。
func (s *NotificationRenderSystem) iconImage(icon string) *ebiten.Image {
	if img, ok := s.iconImages[icon]; ok {
		return img
	}

	h := fnv.New32a()
	h.Write([]byte(icon))
	sum := h.Sum32()

	img := ebiten.NewImage(16, 16)
	img.Fill(color.RGBA{
		R: uint8(sum >> 16),
		G: uint8(sum >> 8),
		B: uint8(sum),
		A: 255,
	})
	s.iconImages[icon] = img
	return img
}
