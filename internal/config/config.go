package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Source describes one configured news origin.
// Type selects the collection path: "web" (HTML extraction, default)
// or "rss" (feed parsing).
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Type string `yaml:"type"`
}

type Config struct {
	// News settings
	SourcesConfigPath string
	MaxArticles       int
	TodayOnly         bool
	ScheduleTime      string // "HH:MM", local time
	RequestTimeout    time.Duration

	Sources       []Source
	SearchQueries []string

	// Feishu settings
	FeishuAppID         string
	FeishuAppSecret     string
	FeishuFolderToken   string
	FeishuWikiNodeToken string
	FeishuGroupChatID   string
	FeishuGroupName     string

	// WeCom group robot settings
	WecomWebhookURL     string
	WecomWebhookSecret  string
	WecomMentionMobiles []string

	Debug bool
}

var scheduleTimeRe = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

func Load() (*Config, error) {
	cfg := &Config{
		SourcesConfigPath: getEnvOrDefault("SOURCES_CONFIG_PATH", "configs/sources.yaml"),
		MaxArticles:       getEnvIntOrDefault("NEWS_MAX_ARTICLES", 15),
		TodayOnly:         getEnvOrDefault("NEWS_TODAY_ONLY", "1") == "1",
		ScheduleTime:      getEnvOrDefault("NEWS_SCHEDULE_TIME", "09:00"),
		RequestTimeout:    15 * time.Second,
	}

	cfg.FeishuAppID = os.Getenv("FEISHU_APP_ID")
	cfg.FeishuAppSecret = os.Getenv("FEISHU_APP_SECRET")
	cfg.FeishuFolderToken = os.Getenv("FEISHU_FOLDER_TOKEN")
	cfg.FeishuWikiNodeToken = os.Getenv("FEISHU_WIKI_NODE_TOKEN")
	cfg.FeishuGroupChatID = os.Getenv("FEISHU_GROUP_CHAT_ID")
	cfg.FeishuGroupName = os.Getenv("FEISHU_GROUP_NAME")

	cfg.WecomWebhookURL = os.Getenv("WECOM_WEBHOOK_URL")
	cfg.WecomWebhookSecret = os.Getenv("WECOM_WEBHOOK_SECRET")
	for _, m := range strings.Split(os.Getenv("WECOM_MENTION_MOBILES"), ",") {
		if m = strings.TrimSpace(m); m != "" {
			cfg.WecomMentionMobiles = append(cfg.WecomMentionMobiles, m)
		}
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	if err := cfg.loadSources(); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// sourcesFile is the YAML layout of configs/sources.yaml.
type sourcesFile struct {
	Sources       []Source `yaml:"sources"`
	SearchQueries []string `yaml:"search_queries"`
}

// loadSources reads the source list and search queries from YAML,
// falling back to the built-in defaults when no file is present.
func (c *Config) loadSources() error {
	f, err := os.Open(c.SourcesConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.Sources = defaultSources()
			c.SearchQueries = defaultSearchQueries()
			return nil
		}
		return fmt.Errorf("open sources config: %w", err)
	}
	defer f.Close()

	var file sourcesFile
	if err := yaml.NewDecoder(f).Decode(&file); err != nil {
		return fmt.Errorf("decode sources config %s: %w", c.SourcesConfigPath, err)
	}

	c.Sources = file.Sources
	c.SearchQueries = file.SearchQueries
	for i := range c.Sources {
		if c.Sources[i].Type == "" {
			c.Sources[i].Type = "web"
		}
	}
	if len(c.Sources) == 0 {
		c.Sources = defaultSources()
	}
	if len(c.SearchQueries) == 0 {
		c.SearchQueries = defaultSearchQueries()
	}
	return nil
}

func (c *Config) Validate() error {
	if c.MaxArticles <= 0 {
		return fmt.Errorf("NEWS_MAX_ARTICLES must be positive, got %d", c.MaxArticles)
	}
	if !scheduleTimeRe.MatchString(c.ScheduleTime) {
		return fmt.Errorf("NEWS_SCHEDULE_TIME must be HH:MM, got %q", c.ScheduleTime)
	}
	for _, s := range c.Sources {
		if s.Name == "" || s.URL == "" {
			return fmt.Errorf("source entries need both name and url (got name=%q url=%q)", s.Name, s.URL)
		}
		if s.Type != "web" && s.Type != "rss" {
			return fmt.Errorf("source %s: type must be web or rss, got %q", s.Name, s.Type)
		}
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func defaultSources() []Source {
	return []Source{
		{Name: "VentureBeat AI", URL: "https://venturebeat.com/category/ai/", Type: "web"},
		{Name: "TechCrunch AI", URL: "https://techcrunch.com/category/artificial-intelligence/", Type: "web"},
		{Name: "The Verge AI", URL: "https://www.theverge.com/ai-artificial-intelligence", Type: "web"},
		{Name: "MIT Tech Review", URL: "https://www.technologyreview.com/topic/artificial-intelligence/", Type: "web"},
		{Name: "AI News", URL: "https://artificialintelligence-news.com/", Type: "web"},
		{Name: "机器之心", URL: "https://www.jiqizhixin.com/", Type: "web"},
		{Name: "量子位", URL: "https://www.qbitai.com/", Type: "web"},
	}
}

func defaultSearchQueries() []string {
	return []string{
		"AI news today 2026",
		"artificial intelligence breakthrough latest",
		"大模型 最新进展 2026",
		"AI 科技新闻 今日",
		"LLM new model release 2026",
		"AI startup funding news",
	}
}
