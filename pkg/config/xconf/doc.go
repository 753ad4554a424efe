// Package xconf 基于 koanf 加载 YAML/JSON 配置。
//
// xconf 只负责加载与反序列化；默认值、必填校验由使用方在 Unmarshal 之后完成。
//
//	cfg, err := xconf.New("config.yaml")
//	if err != nil {
//		return err
//	}
//	var app AppConfig
//	if err := cfg.Unmarshal("", &app); err != nil {
//		return err
//	}
//
// Unmarshal 使用 koanf 的默认解码配置：字符串可转换为 time.Duration，
// 实现 encoding.TextUnmarshaler 的类型按文本解析，允许弱类型转换。
//
// Reload 原子替换配置快照，解析失败时保留旧配置。
// 从字节数据创建的 Config 不支持 Reload。
package xconf
