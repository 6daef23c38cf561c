// Package app glues the aggregation pipeline to the Feishu and WeCom
// delivery layers for one complete run.
package app

import (
	"fmt"
	"time"

	"github.com/openclaw/ainews/internal/article"
	"github.com/openclaw/ainews/internal/config"
	"github.com/openclaw/ainews/internal/feishu"
	"github.com/openclaw/ainews/internal/logger"
	"github.com/openclaw/ainews/internal/metrics"
	"github.com/openclaw/ainews/internal/pipeline"
	"github.com/openclaw/ainews/internal/wecom"
)

// Run statuses. Empty is a valid outcome: nothing crawled today means
// nothing published, not a failure.
const (
	StatusOK     = "ok"
	StatusEmpty  = "empty"
	StatusDryRun = "dry_run"
)

type RunResult struct {
	Status       string
	ArticleCount int
	DocumentID   string
	DocURL       string
}

// Run executes the full daily pass: crawl, render to a Feishu document,
// announce in the group chat and the WeCom robot.
func Run(cfg *config.Config, dryRun bool) (*RunResult, error) {
	dateStr := time.Now().Format("2006年01月02日")
	logger.Info("pipeline run starting", "date", dateStr)

	p := pipeline.New(cfg)
	articles := p.Run()

	if len(articles) == 0 {
		logger.Warn("no articles survived the pipeline, nothing to publish")
		return &RunResult{Status: StatusEmpty}, nil
	}

	if dryRun {
		preview(articles)
		return &RunResult{Status: StatusDryRun, ArticleCount: len(articles)}, nil
	}

	client, err := feishu.NewClient(cfg.FeishuAppID, cfg.FeishuAppSecret, cfg.FeishuFolderToken, cfg.FeishuWikiNodeToken)
	if err != nil {
		return nil, err
	}

	doc, err := client.CreateDocument("📰 AI 科技日报 — " + dateStr)
	if err != nil {
		return nil, fmt.Errorf("create daily document: %w", err)
	}
	metrics.Global.IncrementDocumentsCreated()

	blocks := feishu.BuildDocumentBlocks(articles, dateStr, p.Classifier().Order())
	if err := client.WriteBlocks(doc.ID, client.RootBlockID(doc.ID), blocks); err != nil {
		return nil, fmt.Errorf("write daily document: %w", err)
	}

	digest := feishu.BuildGroupText(articles, doc.URL, dateStr)
	announceGroup(cfg, client, digest)
	announceWecom(cfg, digest)

	logger.Info("pipeline run complete", "doc", doc.URL, "articles", len(articles))
	return &RunResult{
		Status:       StatusOK,
		ArticleCount: len(articles),
		DocumentID:   doc.ID,
		DocURL:       doc.URL,
	}, nil
}

// announceGroup sends the digest to the Feishu group when one is
// configured, resolving the chat id by name if needed. Delivery
// failures here never fail the run: the document already exists.
func announceGroup(cfg *config.Config, client *feishu.Client, digest string) {
	chatID := cfg.FeishuGroupChatID
	if chatID == "" && cfg.FeishuGroupName != "" {
		id, err := client.FindChatIDByName(cfg.FeishuGroupName)
		if err != nil {
			logger.Warn("chat lookup failed", "name", cfg.FeishuGroupName, "error", err)
			return
		}
		chatID = id
	}
	if chatID == "" {
		logger.Info("no feishu group configured, skipping chat message")
		return
	}

	if err := client.SendGroupMessage(chatID, digest); err != nil {
		logger.Warn("group message failed", "error", err)
		return
	}
	metrics.Global.IncrementMessagesSent()
	logger.Info("digest sent to feishu group")
}

// announceWecom mirrors the digest to the WeCom robot, when configured.
func announceWecom(cfg *config.Config, digest string) {
	bot := wecom.NewBot(cfg.WecomWebhookURL, cfg.WecomWebhookSecret, cfg.WecomMentionMobiles)
	if err := bot.SendText(digest); err != nil {
		logger.Warn("wecom message failed", "error", err)
		return
	}
	if cfg.WecomWebhookURL != "" {
		metrics.Global.IncrementMessagesSent()
	}
}

func preview(articles []article.Article) {
	logger.Info("dry run, printing preview only")
	for i, a := range articles {
		fmt.Printf("[%d] [%s] %s\n", i+1, a.Category, a.Title)
		fmt.Printf("    %s | %s\n", a.Source, a.URL)
		if a.Summary != "" {
			fmt.Printf("    %s\n", a.Summary)
		}
	}
}
