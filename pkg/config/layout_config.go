package config

// 布局配置常量
// 本文件定义了通知浮层的窗口尺寸和引擎内部使用的固定布局参数

const (
	// GameWindowWidth 游戏窗口逻辑宽度（像素）
	GameWindowWidth = 800

	// GameWindowHeight 游戏窗口逻辑高度（像素）
	GameWindowHeight = 600

	// StackExtraMargin 堆叠间距的额外边距（像素）
	// 当通知绘制背景时，间距单位在 max(图标尺寸, 字体尺寸) 之上再加上此值，
	// 避免相邻通知的背景框互相贴边
	StackExtraMargin = 6.0

	// BackgroundPaddingX 通知背景框在内容两侧的水平内边距（像素）
	BackgroundPaddingX = 8.0

	// BackgroundPaddingY 通知背景框在内容上下的垂直内边距（像素）
	BackgroundPaddingY = 4.0

	// IconTextGap 图标与文字之间的水平间距（像素）
	IconTextGap = 6.0

	// StaticFadeInWindow 静态模式下淡入窗口时长（秒）
	// 通知激活后在该窗口内透明度从 0 线性升到 1；
	// 若淡入窗口越过淡出起点，两个系数相乘混合
	StaticFadeInWindow = 0.3

	// AutoLootInterval 自动拾取的节流间隔（秒）
	// 同一拾取窗口内，整批槽位确认的触发频率不超过该间隔；
	// 槽位清空重试不受此限制
	AutoLootInterval = 0.3
)

// 选项面板布局常量
const (
	// OptionsPanelWidth 选项面板宽度（像素）
	OptionsPanelWidth = 320.0

	// OptionsPanelRowHeight 选项面板每行高度（像素）
	OptionsPanelRowHeight = 26.0

	// OptionsPanelPadding 选项面板内边距（像素）
	OptionsPanelPadding = 16.0

	// OptionsPanelLabelFontSize 选项面板标签字号
	OptionsPanelLabelFontSize = 14.0

	// OptionsPreviewInterval 预览模式下自动补发预览通知的间隔（秒）
	OptionsPreviewInterval = 1.2
)
