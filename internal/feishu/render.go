package feishu

import (
	"fmt"
	"strings"
	"time"

	"github.com/openclaw/ainews/internal/article"
)

const (
	highlightCount = 3
	digestCount    = 5
)

// BuildDocumentBlocks renders the article list into a docx block
// sequence: header, category sections in the given order, a highlights
// section and a footer.
func BuildDocumentBlocks(articles []article.Article, dateStr string, categoryOrder []string) []Block {
	blocks := []Block{
		TextBlock(fmt.Sprintf("📅 日期: %s  |  共 %d 篇", dateStr, len(articles))),
		TextBlock(fmt.Sprintf("⏰ 生成时间: %s", time.Now().Format("2006-01-02 15:04:05"))),
		DividerBlock(),
	}

	grouped := make(map[string][]article.Article)
	for _, a := range articles {
		grouped[a.Category] = append(grouped[a.Category], a)
	}

	for _, category := range categoryOrder {
		section := grouped[category]
		if len(section) == 0 {
			continue
		}

		blocks = append(blocks, HeadingBlock(fmt.Sprintf("%s (%d篇)", category, len(section)), 2))

		for i, a := range section {
			blocks = append(blocks, HeadingBlock(fmt.Sprintf("%d. %s", i+1, a.Title), 3))
			blocks = append(blocks, LinkBlock(fmt.Sprintf("🔗 %s: %s", a.Source, a.URL), a.URL))
			if a.Summary != "" {
				blocks = append(blocks, TextBlock("📝 "+a.Summary))
			}
			if a.PublishedAt != "" {
				blocks = append(blocks, TextBlock("📅 发布: "+a.PublishedAt))
			}
		}

		blocks = append(blocks, DividerBlock())
	}

	blocks = append(blocks, HeadingBlock("🎯 今日要点", 2))
	for i, a := range articles {
		if i >= highlightCount {
			break
		}
		blocks = append(blocks, BulletBlock(fmt.Sprintf("%s (%s)", a.Title, a.Source)))
	}

	blocks = append(blocks, DividerBlock())
	blocks = append(blocks, TextBlock("—— 由 AI 新闻聚合 Pipeline 自动生成 ——"))

	return blocks
}

// BuildGroupText composes the short chat digest: date, count, document
// link and the top article titles.
func BuildGroupText(articles []article.Article, docURL, dateStr string) string {
	lines := []string{
		"📰 AI 科技日报 " + dateStr,
		fmt.Sprintf("共 %d 篇", len(articles)),
		"文档链接: " + docURL,
		"",
		"今日精选：",
	}
	for i, a := range articles {
		if i >= digestCount {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, a.Title))
	}
	return strings.Join(lines, "\n")
}
