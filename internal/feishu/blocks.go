package feishu

import "net/url"

// Block is one docx v1 block payload.
type Block map[string]any

// docx v1 numeric block types.
const (
	blockTypeText    = 2
	blockTypeBullet  = 12
	blockTypeDivider = 22
)

// heading levels 1-6 map to block types 3-8.
func headingBlockType(level int) (int, string) {
	if level < 1 || level > 6 {
		level = 2
	}
	keys := []string{"heading1", "heading2", "heading3", "heading4", "heading5", "heading6"}
	return level + 2, keys[level-1]
}

func textRun(content string) map[string]any {
	return map[string]any{"text_run": map[string]any{"content": content}}
}

func HeadingBlock(text string, level int) Block {
	blockType, key := headingBlockType(level)
	return Block{
		"block_type": blockType,
		key:          map[string]any{"elements": []any{textRun(text)}},
	}
}

func TextBlock(text string) Block {
	return Block{
		"block_type": blockTypeText,
		"text":       map[string]any{"elements": []any{textRun(text)}},
	}
}

func LinkBlock(text, linkURL string) Block {
	element := map[string]any{
		"text_run": map[string]any{
			"content": text,
			"text_element_style": map[string]any{
				"link": map[string]any{"url": url.QueryEscape(linkURL)},
			},
		},
	}
	return Block{
		"block_type": blockTypeText,
		"text":       map[string]any{"elements": []any{element}},
	}
}

func BulletBlock(text string) Block {
	return Block{
		"block_type": blockTypeBullet,
		"bullet":     map[string]any{"elements": []any{textRun(text)}},
	}
}

func DividerBlock() Block {
	return Block{
		"block_type": blockTypeDivider,
		"divider":    map[string]any{},
	}
}
