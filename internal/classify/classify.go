// Package classify assigns each article to a topic category by keyword
// scoring over its title and summary.
package classify

import "strings"

// Category is one topic bucket: a display name plus the case-insensitive
// substrings that vote for it. Keyword lists mix English and Chinese
// because the sources do.
type Category struct {
	Name     string
	Keywords []string
}

// DefaultCategories returns the built-in category table in priority
// order. Ties between equal scores resolve to the earlier entry.
func DefaultCategories() []Category {
	return []Category{
		{Name: "🔥 Major Release", Keywords: []string{
			"launch", "release", "announce", "发布", "推出", "上线",
			"GPT", "Claude", "Gemini", "Llama", "DeepSeek",
		}},
		{Name: "🔬 Research", Keywords: []string{
			"research", "paper", "study", "breakthrough", "论文",
			"研究", "突破", "benchmark", "SOTA",
		}},
		{Name: "💰 Industry & Funding", Keywords: []string{
			"funding", "acquisition", "invest", "IPO", "融资",
			"收购", "市场", "估值", "partnership", "合作",
		}},
		{Name: "🛠️ Tools & Open Source", Keywords: []string{
			"tool", "framework", "open source", "API", "SDK",
			"开源", "工具", "应用", "plugin", "agent",
		}},
		{Name: "🌍 Policy & Ethics", Keywords: []string{
			"regulation", "policy", "safety", "ethic", "监管",
			"政策", "安全", "伦理", "法规",
		}},
	}
}

// DefaultFallback is the catch-all for articles no keyword set matches.
const DefaultFallback = "📰 General"

// Classifier scores articles against an injected category table, so
// tests can substitute their own without touching shared state.
type Classifier struct {
	categories []Category
	fallback   string
}

func New() *Classifier {
	return NewWithTable(DefaultCategories(), DefaultFallback)
}

func NewWithTable(categories []Category, fallback string) *Classifier {
	return &Classifier{categories: categories, fallback: fallback}
}

// Classify picks the category with the most keyword hits in the
// case-folded title plus summary. Zero hits everywhere lands in the
// fallback category.
func (c *Classifier) Classify(title, summary string) string {
	text := strings.ToLower(title + " " + summary)

	bestIdx, bestScore := 0, 0
	for i, cat := range c.categories {
		score := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				score++
			}
		}
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}

	if bestScore == 0 {
		return c.fallback
	}
	return c.categories[bestIdx].Name
}

// Order lists all category names in declaration order with the fallback
// last. Renderers use it to group output deterministically.
func (c *Classifier) Order() []string {
	names := make([]string, 0, len(c.categories)+1)
	for _, cat := range c.categories {
		names = append(names, cat.Name)
	}
	return append(names, c.fallback)
}
