// Package wecom delivers digests through a WeCom group robot webhook.
package wecom

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/openclaw/ainews/internal/logger"
	"github.com/openclaw/ainews/internal/retry"
)

// Bot holds one webhook destination. Secret is optional; when set the
// request URL gets a timestamp/sign pair the way encrypted robots
// require.
type Bot struct {
	WebhookURL     string
	Secret         string
	MentionMobiles []string

	http *http.Client
}

func NewBot(webhookURL, secret string, mentionMobiles []string) *Bot {
	return &Bot{
		WebhookURL:     webhookURL,
		Secret:         secret,
		MentionMobiles: mentionMobiles,
		http:           &http.Client{Timeout: 10 * time.Second},
	}
}

// SendText posts a text message to the group robot. Without a
// configured webhook the call is a logged no-op.
func (b *Bot) SendText(text string) error {
	if b.WebhookURL == "" {
		logger.Info("wecom webhook not configured, skipping")
		return nil
	}

	target := b.WebhookURL
	if b.Secret != "" {
		target = signedURL(target, b.Secret, time.Now())
	}

	textPayload := map[string]any{"content": text}
	if len(b.MentionMobiles) > 0 {
		textPayload["mentioned_mobile_list"] = b.MentionMobiles
	}
	body, err := json.Marshal(map[string]any{
		"msgtype": "text",
		"text":    textPayload,
	})
	if err != nil {
		return err
	}

	return retry.Do(3, 2*time.Second, func() error {
		resp, err := b.http.Post(target, "application/json", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("wecom request: %w", err)
		}
		defer resp.Body.Close()

		var result struct {
			ErrCode int    `json:"errcode"`
			ErrMsg  string `json:"errmsg"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("wecom response: %w", err)
		}
		if result.ErrCode != 0 {
			return fmt.Errorf("wecom error %d: %s", result.ErrCode, result.ErrMsg)
		}
		return nil
	})
}

// signedURL appends timestamp and HMAC-SHA256 signature parameters for
// robots with signing enabled. The string to sign is "timestamp\nsecret".
func signedURL(webhookURL, secret string, now time.Time) string {
	timestamp := strconv.FormatInt(now.Unix(), 10)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "\n" + secret))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	separator := "?"
	if strings.Contains(webhookURL, "?") {
		separator = "&"
	}
	return webhookURL + separator + "timestamp=" + timestamp + "&sign=" + url.QueryEscape(signature)
}
