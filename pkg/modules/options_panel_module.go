package modules

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/lootfeed/pkg/config"
	"github.com/decker502/lootfeed/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// checkboxRow 选项面板中的一行复选框
type checkboxRow struct {
	label string
	get   func() bool
	set   func(bool)
}

// sliderRow 选项面板中的一行滑动条
type sliderRow struct {
	label    string
	min, max float64
	get      func() float64
	set      func(float64)
	format   func(float64) string // 当前值的显示格式
}

// OptionsPanelModule 选项面板模块
//
// 职责：
//   - 显示通知浮层的全部设置项（复选框 + 滑动条）
//   - 面板打开期间进入预览模式：周期性补发预览通知，
//     让位置与样式调整实时可见
//   - 面板外区域支持拖拽：把通知锚点拖到新位置，
//     实时写入水平/垂直偏移
//   - 关闭时退出预览模式并持久化设置
//
// 设计原则：
//   - 自包含：封装所有选项面板相关功能
//   - 低耦合：通过回调与通知驱动器交互
type OptionsPanelModule struct {
	settings *game.SettingsManager

	// 回调函数
	spawnPreview  func() // 补发一条预览通知
	clearPreviews func() // 清除所有预览通知
	labelFont     *text.GoTextFace

	// 面板状态
	active         bool
	previewElapsed float64 // 距上次补发预览通知的时间（秒）

	// 拖拽状态
	dragging      bool
	dragSliderIdx int // 正在拖拽的滑动条下标，-1 表示无

	// 控件定义（读写均经由设置管理器取当前记录）
	checkboxes []checkboxRow
	sliders    []sliderRow

	windowWidth  int
	windowHeight int
}

// NewOptionsPanelModule 创建选项面板模块
//
// 参数:
//   - settings: 设置管理器
//   - faceSource: 标签字体来源（nil 时跳过文字渲染）
//   - windowWidth, windowHeight: 游戏窗口尺寸
//   - spawnPreview: 补发预览通知的回调
//   - clearPreviews: 清除预览通知的回调
func NewOptionsPanelModule(
	settings *game.SettingsManager,
	faceSource *text.GoTextFaceSource,
	windowWidth, windowHeight int,
	spawnPreview func(),
	clearPreviews func(),
) *OptionsPanelModule {
	m := &OptionsPanelModule{
		settings:      settings,
		spawnPreview:  spawnPreview,
		clearPreviews: clearPreviews,
		dragSliderIdx: -1,
		windowWidth:   windowWidth,
		windowHeight:  windowHeight,
	}

	if faceSource != nil {
		m.labelFont = &text.GoTextFace{Source: faceSource, Size: config.OptionsPanelLabelFontSize}
	}

	m.buildRows()

	log.Printf("[OptionsPanelModule] Initialized successfully")
	return m
}

// buildRows 构造控件行
//
// 控件闭包不捕获设置记录本身，每次读写都经由设置管理器取当前
// 记录；设置记录被整体替换（控制台 reset 等）后控件依然生效。
func (m *OptionsPanelModule) buildRows() {
	cur := m.settings.GetSettings

	m.checkboxes = []checkboxRow{
		{"Enable notifications", func() bool { return cur().Enabled }, func(v bool) { cur().Enabled = v }},
		{"Show background", func() bool { return cur().ShowBackground }, func(v bool) { cur().ShowBackground = v }},
		{"Quality glow", func() bool { return cur().GlowEnabled }, func(v bool) { cur().GlowEnabled = v }},
		{"Show quantity", func() bool { return cur().ShowQuantity }, func(v bool) { cur().ShowQuantity = v }},
		{"Show money", func() bool { return cur().ShowMoney }, func(v bool) { cur().ShowMoney = v }},
		{"Show honor", func() bool { return cur().ShowHonor }, func(v bool) { cur().ShowHonor = v }},
		{"Fast loot", func() bool { return cur().FastLoot }, func(v bool) { cur().FastLoot = v }},
		{"Static mode", func() bool { return cur().DisplayMode == "static" }, func(v bool) {
			if v {
				cur().DisplayMode = "static"
			} else {
				cur().DisplayMode = "scroll"
			}
		}},
	}

	m.sliders = []sliderRow{
		{"Icon size", 16, 48,
			func() float64 { return cur().IconSize },
			func(v float64) { cur().IconSize = v },
			func(v float64) string { return fmt.Sprintf("%.0f", v) }},
		{"Font size", 10, 32,
			func() float64 { return cur().FontSize },
			func(v float64) { cur().FontSize = v },
			func(v float64) string { return fmt.Sprintf("%.0f", v) }},
		{"Duration", 1, 8,
			func() float64 { return cur().Duration },
			func(v float64) {
				s := cur()
				s.Duration = v
				// 淡出起点跟随时长，保持 2/3 比例，避免起点越过终点
				s.FadeStart = v * 2 / 3
			},
			func(v float64) string { return fmt.Sprintf("%.1fs", v) }},
		{"Scroll distance", 0, 300,
			func() float64 { return cur().ScrollDistance },
			func(v float64) { cur().ScrollDistance = v },
			func(v float64) string { return fmt.Sprintf("%.0f", v) }},
		{"Max visible", 1, 10,
			func() float64 { return float64(cur().MaxVisible) },
			func(v float64) { cur().MaxVisible = int(v + 0.5) },
			func(v float64) string { return fmt.Sprintf("%d", int(v+0.5)) }},
		{"Background alpha", 0, 1,
			func() float64 { return cur().BackgroundAlpha },
			func(v float64) { cur().BackgroundAlpha = v },
			func(v float64) string { return fmt.Sprintf("%.2f", v) }},
		{"Min quality", 0, 7,
			func() float64 { return float64(cur().MinQuality) },
			func(v float64) { cur().MinQuality = int(v + 0.5) },
			func(v float64) string { return fmt.Sprintf("%d", int(v+0.5)) }},
	}
}

// Show 显示选项面板并进入预览模式
func (m *OptionsPanelModule) Show() {
	if m.active {
		return
	}
	m.active = true
	m.previewElapsed = config.OptionsPreviewInterval // 立即补发第一条预览
	log.Printf("[OptionsPanelModule] Options panel shown")
}

// Hide 隐藏选项面板
//
// 退出预览模式（清除全部预览通知）并持久化设置。
func (m *OptionsPanelModule) Hide() {
	if !m.active {
		return
	}
	m.active = false
	m.dragging = false
	m.dragSliderIdx = -1

	if m.clearPreviews != nil {
		m.clearPreviews()
	}
	if err := m.settings.Save(); err != nil {
		log.Printf("[OptionsPanelModule] Warning: failed to save settings: %v", err)
	}
	log.Printf("[OptionsPanelModule] Options panel hidden")
}

// Toggle 切换面板显隐
func (m *OptionsPanelModule) Toggle() {
	if m.active {
		m.Hide()
	} else {
		m.Show()
	}
}

// IsActive 检查选项面板是否激活
func (m *OptionsPanelModule) IsActive() bool {
	return m.active
}

// Update 更新选项面板状态
//
// 参数:
//   - deltaTime: 距离上一帧的时间间隔（秒）
func (m *OptionsPanelModule) Update(deltaTime float64) {
	if !m.active {
		return
	}

	// 预览模式：周期性补发预览通知
	m.previewElapsed += deltaTime
	if m.previewElapsed >= config.OptionsPreviewInterval {
		m.previewElapsed = 0
		if m.spawnPreview != nil {
			m.spawnPreview()
		}
	}

	m.handleMouse()
}

// handleMouse 处理面板内控件点击、滑动条拖拽和面板外的锚点拖拽
func (m *OptionsPanelModule) handleMouse() {
	mx, my := ebiten.CursorPosition()
	fx, fy := float64(mx), float64(my)

	px, py := m.panelOrigin()
	w := config.OptionsPanelWidth
	h := m.panelHeight()

	justPressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	if justPressed {
		inPanel := fx >= px && fx <= px+w && fy >= py && fy <= py+h
		if inPanel {
			m.handlePanelClick(fx, fy, px, py)
		} else {
			// 面板外按下：开始拖拽通知锚点
			m.dragging = true
		}
	}

	if !pressed {
		m.dragging = false
		m.dragSliderIdx = -1
		return
	}

	// 滑动条拖拽
	if m.dragSliderIdx >= 0 {
		m.updateSliderFromCursor(m.dragSliderIdx, fx, px)
	}

	// 锚点拖拽：把屏幕坐标换算成相对屏幕中心的偏移，实时写入设置
	if m.dragging {
		s := m.settings.GetSettings()
		s.OffsetX = fx - float64(m.windowWidth)/2
		s.OffsetY = fy - float64(m.windowHeight)/2
	}
}

// handlePanelClick 处理面板内的一次按下
func (m *OptionsPanelModule) handlePanelClick(fx, fy, px, py float64) {
	row := int((fy - py - config.OptionsPanelPadding) / config.OptionsPanelRowHeight)

	if row >= 0 && row < len(m.checkboxes) {
		cb := &m.checkboxes[row]
		cb.set(!cb.get())
		log.Printf("[OptionsPanelModule] %q toggled: %v", cb.label, cb.get())
		return
	}

	sliderIdx := row - len(m.checkboxes)
	if sliderIdx >= 0 && sliderIdx < len(m.sliders) {
		m.dragSliderIdx = sliderIdx
		m.updateSliderFromCursor(sliderIdx, fx, px)
		return
	}

	// 底部两个按钮行：Reset / Close
	buttonRow := row - len(m.checkboxes) - len(m.sliders)
	switch buttonRow {
	case 0:
		if err := m.settings.Reset(); err != nil {
			log.Printf("[OptionsPanelModule] Warning: failed to reset settings: %v", err)
		}
		log.Printf("[OptionsPanelModule] Settings restored to defaults")
	case 1:
		m.Hide()
	}
}

// updateSliderFromCursor 根据光标水平位置更新滑动条的值
func (m *OptionsPanelModule) updateSliderFromCursor(idx int, fx, px float64) {
	sl := &m.sliders[idx]
	trackX := px + config.OptionsPanelWidth/2
	trackW := config.OptionsPanelWidth/2 - config.OptionsPanelPadding

	frac := (fx - trackX) / trackW
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	sl.set(sl.min + frac*(sl.max-sl.min))
}

// panelOrigin 返回面板左上角的屏幕坐标（屏幕左侧垂直居中）
func (m *OptionsPanelModule) panelOrigin() (x, y float64) {
	x = config.OptionsPanelPadding
	y = (float64(m.windowHeight) - m.panelHeight()) / 2
	return x, y
}

// panelHeight 返回面板总高度
func (m *OptionsPanelModule) panelHeight() float64 {
	rows := len(m.checkboxes) + len(m.sliders) + 2 // +2：Reset 和 Close 按钮行
	return float64(rows)*config.OptionsPanelRowHeight + config.OptionsPanelPadding*2
}

// Draw 渲染选项面板到屏幕
//
// 渲染顺序：
//  1. 面板背景
//  2. 复选框行
//  3. 滑动条行
//  4. Reset / Close 按钮行
func (m *OptionsPanelModule) Draw(screen *ebiten.Image) {
	if !m.active {
		return
	}

	px, py := m.panelOrigin()
	w := config.OptionsPanelWidth
	h := m.panelHeight()

	// 1. 面板背景
	vector.DrawFilledRect(screen, float32(px), float32(py), float32(w), float32(h),
		color.RGBA{16, 16, 24, 230}, false)
	vector.StrokeRect(screen, float32(px), float32(py), float32(w), float32(h),
		1, color.RGBA{120, 120, 140, 255}, false)

	rowY := py + config.OptionsPanelPadding

	// 2. 复选框行
	for _, cb := range m.checkboxes {
		m.drawCheckboxRow(screen, &cb, px, rowY)
		rowY += config.OptionsPanelRowHeight
	}

	// 3. 滑动条行
	for _, sl := range m.sliders {
		m.drawSliderRow(screen, &sl, px, rowY)
		rowY += config.OptionsPanelRowHeight
	}

	// 4. 按钮行
	m.drawButtonRow(screen, "Reset to defaults", px, rowY)
	rowY += config.OptionsPanelRowHeight
	m.drawButtonRow(screen, "Close", px, rowY)
}

// drawCheckboxRow 渲染一行复选框
func (m *OptionsPanelModule) drawCheckboxRow(screen *ebiten.Image, cb *checkboxRow, px, rowY float64) {
	boxSize := float32(14)
	boxX := float32(px + config.OptionsPanelPadding)
	boxY := float32(rowY + (config.OptionsPanelRowHeight-float64(boxSize))/2)

	vector.StrokeRect(screen, boxX, boxY, boxSize, boxSize, 1, color.RGBA{200, 200, 200, 255}, false)
	if cb.get() {
		vector.DrawFilledRect(screen, boxX+3, boxY+3, boxSize-6, boxSize-6,
			color.RGBA{90, 200, 90, 255}, false)
	}

	m.drawLabel(screen, cb.label, px+config.OptionsPanelPadding+22, rowY+config.OptionsPanelRowHeight/2,
		color.RGBA{220, 220, 220, 255})
}

// drawSliderRow 渲染一行滑动条
func (m *OptionsPanelModule) drawSliderRow(screen *ebiten.Image, sl *sliderRow, px, rowY float64) {
	m.drawLabel(screen, sl.label, px+config.OptionsPanelPadding, rowY+config.OptionsPanelRowHeight/2,
		color.RGBA{220, 220, 220, 255})

	trackX := px + config.OptionsPanelWidth/2
	trackW := config.OptionsPanelWidth/2 - config.OptionsPanelPadding
	trackY := rowY + config.OptionsPanelRowHeight/2

	// 滑槽
	vector.DrawFilledRect(screen, float32(trackX), float32(trackY-1), float32(trackW), 2,
		color.RGBA{120, 120, 140, 255}, false)

	// 滑块
	frac := (sl.get() - sl.min) / (sl.max - sl.min)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	knobX := trackX + frac*trackW
	vector.DrawFilledRect(screen, float32(knobX-3), float32(trackY-6), 6, 12,
		color.RGBA{230, 230, 230, 255}, false)

	// 当前值
	m.drawLabel(screen, sl.format(sl.get()), trackX-34, rowY+config.OptionsPanelRowHeight/2,
		color.RGBA{160, 160, 180, 255})
}

// drawButtonRow 渲染一行按钮
func (m *OptionsPanelModule) drawButtonRow(screen *ebiten.Image, label string, px, rowY float64) {
	btnX := float32(px + config.OptionsPanelPadding)
	btnY := float32(rowY + 2)
	btnW := float32(config.OptionsPanelWidth - config.OptionsPanelPadding*2)
	btnH := float32(config.OptionsPanelRowHeight - 4)

	vector.DrawFilledRect(screen, btnX, btnY, btnW, btnH, color.RGBA{50, 50, 70, 255}, false)
	vector.StrokeRect(screen, btnX, btnY, btnW, btnH, 1, color.RGBA{160, 160, 180, 255}, false)

	if m.labelFont != nil {
		op := &text.DrawOptions{}
		op.LayoutOptions.PrimaryAlign = text.AlignCenter
		op.LayoutOptions.SecondaryAlign = text.AlignCenter
		op.GeoM.Translate(px+config.OptionsPanelWidth/2, rowY+config.OptionsPanelRowHeight/2)
		op.ColorScale.ScaleWithColor(color.RGBA{220, 220, 220, 255})
		text.Draw(screen, label, m.labelFont, op)
	}
}

// drawLabel 渲染一段左对齐、垂直居中的标签文字
func (m *OptionsPanelModule) drawLabel(screen *ebiten.Image, label string, x, y float64, clr color.RGBA) {
	if m.labelFont == nil {
		return
	}
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignStart
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, label, m.labelFont, op)
}
