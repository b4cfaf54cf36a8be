package app

import (
	"image/color"
	"strings"

	"github.com/decker502/lootfeed/pkg/config"
	"github.com/decker502/lootfeed/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// commandPrefix 命令命名空间
const commandPrefix = "/lootfeed"

// feedbackLifetime 反馈消息的显示时长（秒）
const feedbackLifetime = 4.0

// CommandInput 命令输入条
//
// 按 “/” 开始输入，回车提交到命令分发器，Esc 取消。
// 命令反馈消息在输入条位置短暂停留后消失。
type CommandInput struct {
	dispatcher *game.CommandDispatcher

	capturing bool
	buffer    []rune

	feedback        string
	feedbackElapsed float64

	labelFont *text.GoTextFace

	windowWidth  int
	windowHeight int
}

// NewCommandInput 创建命令输入条
func NewCommandInput(dispatcher *game.CommandDispatcher, faceSource *text.GoTextFaceSource, windowWidth, windowHeight int) *CommandInput {
	c := &CommandInput{
		dispatcher:   dispatcher,
		windowWidth:  windowWidth,
		windowHeight: windowHeight,
	}
	if faceSource != nil {
		c.labelFont = &text.GoTextFace{Source: faceSource, Size: config.OptionsPanelLabelFontSize}
	}
	return c
}

// IsCapturing 是否正在捕获键盘输入
//
// 捕获期间其它键盘快捷键应被挂起。
func (c *CommandInput) IsCapturing() bool {
	return c.capturing
}

// Update 处理一帧键盘输入
func (c *CommandInput) Update(deltaTime float64) {
	if c.feedback != "" {
		c.feedbackElapsed += deltaTime
		if c.feedbackElapsed >= feedbackLifetime {
			c.feedback = ""
		}
	}

	if !c.capturing {
		// “/” 开始输入
		for _, r := range ebiten.AppendInputChars(nil) {
			if r == '/' {
				c.capturing = true
				c.buffer = []rune{'/'}
				break
			}
		}
		return
	}

	c.buffer = append(c.buffer, ebiten.AppendInputChars(nil)...)

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(c.buffer) > 0 {
		c.buffer = c.buffer[:len(c.buffer)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		c.capturing = false
		c.buffer = nil
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		c.submit(string(c.buffer))
		c.capturing = false
		c.buffer = nil
	}
}

// submit 提交一条输入
//
// 只认本命令命名空间；其它输入在真实客户端环境里会交给
// 聊天系统，这里直接忽略。
func (c *CommandInput) submit(line string) {
	line = strings.TrimSpace(line)
	if line != commandPrefix && !strings.HasPrefix(line, commandPrefix+" ") {
		return
	}
	sub := strings.TrimPrefix(line, commandPrefix)

	c.feedback = c.dispatcher.Handle(sub)
	c.feedbackElapsed = 0
}

// Draw 渲染输入条与反馈消息
func (c *CommandInput) Draw(screen *ebiten.Image) {
	if c.labelFont == nil {
		return
	}

	baseY := float64(c.windowHeight) - 28

	if c.capturing {
		vector.DrawFilledRect(screen, 8, float32(baseY-4), float32(c.windowWidth-16), 24,
			color.RGBA{0, 0, 0, 180}, false)

		op := &text.DrawOptions{}
		op.LayoutOptions.SecondaryAlign = text.AlignCenter
		op.GeoM.Translate(16, baseY+8)
		op.ColorScale.ScaleWithColor(color.RGBA{255, 255, 255, 255})
		text.Draw(screen, string(c.buffer)+"_", c.labelFont, op)
		return
	}

	if c.feedback != "" {
		op := &text.DrawOptions{}
		op.LayoutOptions.SecondaryAlign = text.AlignCenter
		op.GeoM.Translate(16, baseY+8)
		op.ColorScale.ScaleWithColor(color.RGBA{255, 220, 120, 255})
		text.Draw(screen, c.feedback, c.labelFont, op)
	}
}
