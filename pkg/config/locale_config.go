package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LocaleConfig 当前客户端语言环境的固定格式串
//
// 这些格式串由客户端语言包提供，启动时编译一次为匹配模式
// （见 pkg/parser），进程生命周期内复用。本程序不是本地化引擎：
// 只针对当前语言环境的固定模板做匹配，不做任何翻译。
//
// 占位符约定与客户端一致：%s 为字符串，%d 为整数。
type LocaleConfig struct {
	// LootSelf 本地玩家拾取物品的聊天行模板（恰好一个 %s 占位符）
	// 其他玩家的拾取行使用不同模板，因此该模板天然只匹配自己的拾取
	LootSelf string `yaml:"lootSelf"`

	// GoldAmount 金币数量模板
	GoldAmount string `yaml:"goldAmount"`

	// SilverAmount 银币数量模板
	SilverAmount string `yaml:"silverAmount"`

	// CopperAmount 铜币数量模板
	CopperAmount string `yaml:"copperAmount"`

	// HonorWord 荣誉货币的本地化名词（用于荣誉数值的宽松提取）
	HonorWord string `yaml:"honorWord"`
}

// DefaultLocaleConfig 返回内置的 enUS 语言包
func DefaultLocaleConfig() *LocaleConfig {
	return &LocaleConfig{
		LootSelf:     "You receive loot: %s.",
		GoldAmount:   "%d Gold",
		SilverAmount: "%d Silver",
		CopperAmount: "%d Copper",
		HonorWord:    "Honor",
	}
}

// LoadLocaleConfig 从 YAML 文件加载语言包
//
// 文件中缺失的键保留内置 enUS 默认值（yaml 反序列化不会覆盖未出现的字段）。
//
// 参数：
//   - path: 语言包文件路径
//
// 返回：
//   - *LocaleConfig: 加载后的语言包
//   - error: 如果读取或解析失败返回错误
func LoadLocaleConfig(path string) (*LocaleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale config: %w", err)
	}

	// 以默认值为底，只覆盖文件中出现的键
	loc := DefaultLocaleConfig()
	if err := yaml.Unmarshal(data, loc); err != nil {
		return nil, fmt.Errorf("failed to parse locale config: %w", err)
	}

	return loc, nil
}

// Validate 校验语言包的完整性
//
// 拾取模板必须恰好包含一个 %s 占位符；货币模板必须各包含一个 %d。
func (lc *LocaleConfig) Validate() error {
	if countPlaceholder(lc.LootSelf, "%s") != 1 {
		return fmt.Errorf("lootSelf template must contain exactly one %%s placeholder: %q", lc.LootSelf)
	}
	for _, tpl := range []struct {
		name  string
		value string
	}{
		{"goldAmount", lc.GoldAmount},
		{"silverAmount", lc.SilverAmount},
		{"copperAmount", lc.CopperAmount},
	} {
		if countPlaceholder(tpl.value, "%d") != 1 {
			return fmt.Errorf("%s template must contain exactly one %%d placeholder: %q", tpl.name, tpl.value)
		}
	}
	if lc.HonorWord == "" {
		return fmt.Errorf("honorWord must not be empty")
	}
	return nil
}

// countPlaceholder 统计模板中占位符出现的次数
func countPlaceholder(s, placeholder string) int {
	count := 0
	for i := 0; i+len(placeholder) <= len(s); i++ {
		if s[i:i+len(placeholder)] == placeholder {
			count++
			i += len(placeholder) - 1
		}
	}
	return count
}
