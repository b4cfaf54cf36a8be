// Package parser 从聊天事件的自由文本中提取结构化事实
//
// 客户端语言包提供的格式串（如 "You receive loot: %s."）在启动时
// 编译一次为正则模式：先转义所有正则元字符，再把占位符替换为捕获组。
// 编译后的模式在进程生命周期内复用，不在每条消息上重复编译。
package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// CompileTemplate 把语言包格式串编译为匹配模式
//
// 转换规则：
//  1. 对整个格式串做正则转义（保证任意语言环境的字面文本都安全）
//  2. %s 占位符替换为 (.+) 捕获组
//  3. %d 占位符替换为 (\d+) 捕获组
//
// 参数：
//   - format: 语言包格式串
//   - anchored: 是否锚定在行首（拾取模板需要锚定，货币模板是子串匹配）
//
// 返回：
//   - *regexp.Regexp: 编译后的模式
//   - error: 如果编译失败返回错误
func CompileTemplate(format string, anchored bool) (*regexp.Regexp, error) {
	quoted := regexp.QuoteMeta(format)
	quoted = strings.ReplaceAll(quoted, "%s", "(.+)")
	quoted = strings.ReplaceAll(quoted, "%d", `(\d+)`)
	if anchored {
		quoted = "^" + quoted
	}

	re, err := regexp.Compile(quoted)
	if err != nil {
		return nil, fmt.Errorf("failed to compile template %q: %w", format, err)
	}
	return re, nil
}

// compileHonorPattern 编译荣誉数值的宽松提取模式
//
// 捕获紧邻荣誉名词之前的带符号整数，如 "198 Honor"、"+50 Honor Points"。
// 名词部分不区分大小写。
func compileHonorPattern(honorWord string) (*regexp.Regexp, error) {
	pattern := `([+-]?\d+)\s+(?i:` + regexp.QuoteMeta(honorWord) + `)`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile honor pattern for %q: %w", honorWord, err)
	}
	return re, nil
}
