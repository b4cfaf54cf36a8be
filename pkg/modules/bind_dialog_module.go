package modules

import (
	"image/color"
	"log"

	"github.com/decker502/lootfeed/pkg/config"
	"github.com/decker502/lootfeed/pkg/fastloot"
	"github.com/decker502/lootfeed/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 绑定确认框布局常量
const (
	bindDialogWidth   = 260.0
	bindDialogHeight  = 90.0
	bindDialogPadding = 10.0
	bindButtonWidth   = 90.0
	bindButtonHeight  = 24.0
)

// BindDialogModule 绑定确认框模块
//
// 快速拾取拦截"拾取后绑定"提示时的自定义确认面：
// 显示待确认物品的图标与名称，提供接受（确认拾取）和
// 取消（放弃槽位）两个按钮。位置由设置中的偏移决定。
type BindDialogModule struct {
	prompts   *fastloot.BindPromptController
	settings  *game.SettingsManager
	labelFont *text.GoTextFace

	windowWidth  int
	windowHeight int
}

// NewBindDialogModule 创建绑定确认框模块
func NewBindDialogModule(
	prompts *fastloot.BindPromptController,
	settings *game.SettingsManager,
	faceSource *text.GoTextFaceSource,
	windowWidth, windowHeight int,
) *BindDialogModule {
	m := &BindDialogModule{
		prompts:      prompts,
		settings:     settings,
		windowWidth:  windowWidth,
		windowHeight: windowHeight,
	}
	if faceSource != nil {
		m.labelFont = &text.GoTextFace{Source: faceSource, Size: config.OptionsPanelLabelFontSize}
	}
	return m
}

// Update 处理确认框的按钮点击
func (m *BindDialogModule) Update() {
	if !m.prompts.Active() {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}

	mx, my := ebiten.CursorPosition()
	fx, fy := float64(mx), float64(my)

	dx, dy := m.origin()
	btnY := dy + bindDialogHeight - bindDialogPadding - bindButtonHeight
	acceptX := dx + bindDialogPadding
	cancelX := dx + bindDialogWidth - bindDialogPadding - bindButtonWidth

	if fy < btnY || fy > btnY+bindButtonHeight {
		return
	}
	switch {
	case fx >= acceptX && fx <= acceptX+bindButtonWidth:
		log.Printf("[BindDialogModule] Accepted bind confirmation for %q", m.prompts.Pending().Name)
		m.prompts.Accept()
	case fx >= cancelX && fx <= cancelX+bindButtonWidth:
		log.Printf("[BindDialogModule] Cancelled bind confirmation for %q", m.prompts.Pending().Name)
		m.prompts.Cancel()
	}
}

// Draw 渲染确认框
func (m *BindDialogModule) Draw(screen *ebiten.Image, icons func(string) *ebiten.Image) {
	if !m.prompts.Active() {
		return
	}
	pending := m.prompts.Pending()
	dx, dy := m.origin()

	// 背景与边框
	vector.DrawFilledRect(screen, float32(dx), float32(dy), bindDialogWidth, bindDialogHeight,
		color.RGBA{24, 20, 16, 235}, false)
	vector.StrokeRect(screen, float32(dx), float32(dy), bindDialogWidth, bindDialogHeight,
		1, color.RGBA{180, 150, 60, 255}, false)

	// 物品图标
	iconX := dx + bindDialogPadding
	iconY := dy + bindDialogPadding
	if icons != nil && pending.Icon != "" {
		if img := icons(pending.Icon); img != nil {
			bounds := img.Bounds()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(24/float64(bounds.Dx()), 24/float64(bounds.Dy()))
			op.GeoM.Translate(iconX, iconY)
			screen.DrawImage(img, op)
		}
	}

	// 物品名称与提示文字
	if m.labelFont != nil {
		nameOp := &text.DrawOptions{}
		nameOp.LayoutOptions.SecondaryAlign = text.AlignCenter
		nameOp.GeoM.Translate(iconX+30, iconY+12)
		nameOp.ColorScale.ScaleWithColor(color.RGBA{255, 255, 255, 255})
		text.Draw(screen, pending.Name, m.labelFont, nameOp)

		hintOp := &text.DrawOptions{}
		hintOp.GeoM.Translate(dx+bindDialogPadding, iconY+30)
		hintOp.ColorScale.ScaleWithColor(color.RGBA{200, 180, 120, 255})
		text.Draw(screen, "This item will bind to you when picked up.", m.labelFont, hintOp)
	}

	// 接受 / 取消按钮
	btnY := dy + bindDialogHeight - bindDialogPadding - bindButtonHeight
	m.drawButton(screen, "Accept", dx+bindDialogPadding, btnY)
	m.drawButton(screen, "Cancel", dx+bindDialogWidth-bindDialogPadding-bindButtonWidth, btnY)
}

// drawButton 渲染一个按钮
func (m *BindDialogModule) drawButton(screen *ebiten.Image, label string, x, y float64) {
	vector.DrawFilledRect(screen, float32(x), float32(y), bindButtonWidth, bindButtonHeight,
		color.RGBA{50, 50, 70, 255}, false)
	vector.StrokeRect(screen, float32(x), float32(y), bindButtonWidth, bindButtonHeight,
		1, color.RGBA{160, 160, 180, 255}, false)

	if m.labelFont != nil {
		op := &text.DrawOptions{}
		op.LayoutOptions.PrimaryAlign = text.AlignCenter
		op.LayoutOptions.SecondaryAlign = text.AlignCenter
		op.GeoM.Translate(x+bindButtonWidth/2, y+bindButtonHeight/2)
		op.ColorScale.ScaleWithColor(color.RGBA{220, 220, 220, 255})
		text.Draw(screen, label, m.labelFont, op)
	}
}

// origin 返回确认框左上角坐标（屏幕中心 + 设置偏移）
func (m *BindDialogModule) origin() (x, y float64) {
	s := m.settings.GetSettings()
	x = float64(m.windowWidth)/2 - bindDialogWidth/2 + s.BindDialogOffsetX
	y = float64(m.windowHeight)/2 - bindDialogHeight/2 + s.BindDialogOffsetY
	return x, y
}
