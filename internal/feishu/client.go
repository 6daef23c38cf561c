// Package feishu talks to the Feishu Open API: tenant auth, document
// creation, block writing and group messages.
package feishu

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/openclaw/ainews/internal/logger"
	"github.com/openclaw/ainews/internal/retry"
)

const (
	defaultBaseURL = "https://open.feishu.cn/open-apis"

	// Feishu rejects children payloads above 50 blocks per request.
	writeBatchSize = 50

	// Renew the tenant token 5 minutes before Feishu expires it.
	tokenSafetyMargin = 5 * time.Minute
)

// Client is an authenticated Feishu Open API client. The tenant token
// is cached on the struct and renewed on expiry.
type Client struct {
	appID         string
	appSecret     string
	folderToken   string
	wikiNodeToken string

	// BaseURL is the API root, overridable for tests.
	BaseURL string

	http        *http.Client
	token       string
	tokenExpiry time.Time
}

// Document is a created Feishu document reference.
type Document struct {
	ID    string
	Title string
	URL   string
}

type apiResponse struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func NewClient(appID, appSecret, folderToken, wikiNodeToken string) (*Client, error) {
	if appID == "" || appSecret == "" {
		return nil, fmt.Errorf("feishu app credentials not configured: set FEISHU_APP_ID and FEISHU_APP_SECRET")
	}
	return &Client{
		appID:         appID,
		appSecret:     appSecret,
		folderToken:   folderToken,
		wikiNodeToken: wikiNodeToken,
		BaseURL:       defaultBaseURL,
		http:          &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// tenantToken returns a valid tenant_access_token, fetching a fresh
// one when the cached token is missing or near expiry.
func (c *Client) tenantToken() (string, error) {
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	body, err := json.Marshal(map[string]string{
		"app_id":     c.appID,
		"app_secret": c.appSecret,
	})
	if err != nil {
		return "", err
	}

	resp, err := c.http.Post(c.BaseURL+"/auth/v3/tenant_access_token/internal",
		"application/json; charset=utf-8", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("request tenant token: %w", err)
	}
	defer resp.Body.Close()

	var data struct {
		Code              int    `json:"code"`
		Msg               string `json:"msg"`
		TenantAccessToken string `json:"tenant_access_token"`
		Expire            int    `json:"expire"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decode tenant token response: %w", err)
	}
	if data.Code != 0 {
		return "", fmt.Errorf("tenant token refused (code=%d): %s", data.Code, data.Msg)
	}

	expire := time.Duration(data.Expire) * time.Second
	if expire == 0 {
		expire = 2 * time.Hour
	}
	c.token = data.TenantAccessToken
	c.tokenExpiry = time.Now().Add(expire - tokenSafetyMargin)
	logger.Info("feishu authenticated")
	return c.token, nil
}

// call sends an authenticated JSON request and unwraps the code/msg
// envelope.
func (c *Client) call(method, path string, payload any) (json.RawMessage, error) {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	token, err := c.tenantToken()
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feishu %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return nil, fmt.Errorf("feishu %s %s: decode: %w", method, path, err)
	}
	if api.Code != 0 {
		return nil, fmt.Errorf("feishu %s %s: code=%d: %s", method, path, api.Code, api.Msg)
	}
	return api.Data, nil
}

// CreateDocument creates a cloud document, opens link sharing and, when
// a wiki node is configured, tries to move it into the knowledge base.
func (c *Client) CreateDocument(title string) (*Document, error) {
	payload := map[string]string{"title": title}
	if c.folderToken != "" {
		payload["folder_token"] = c.folderToken
	}

	data, err := c.call(http.MethodPost, "/docx/v1/documents", payload)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	var created struct {
		Document struct {
			DocumentID string `json:"document_id"`
		} `json:"document"`
	}
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("create document: decode: %w", err)
	}
	docID := created.Document.DocumentID
	logger.Info("document created", "title", title, "id", docID)

	c.setLinkSharing(docID)

	docURL := c.tryMoveToWiki(docID)
	if docURL == "" {
		docURL = "https://feishu.cn/docx/" + docID
	}

	return &Document{ID: docID, Title: title, URL: docURL}, nil
}

// setLinkSharing makes the document readable by anyone with the link.
// Failures only cost visibility, so they are logged and swallowed.
func (c *Client) setLinkSharing(docID string) {
	payload := map[string]string{
		"external_access_entity": "open",
		"security_entity":        "anyone_can_view",
		"comment_entity":         "anyone_can_view",
		"share_entity":           "anyone",
		"link_share_entity":      "anyone_readable",
	}
	if _, err := c.call(http.MethodPatch, "/drive/v1/permissions/"+docID+"/public?type=docx", payload); err != nil {
		logger.Warn("link sharing not enabled", "doc", docID, "error", err)
	}
}

// tryMoveToWiki moves the document under the configured wiki node and
// returns the wiki URL, or "" when unconfigured or not permitted.
func (c *Client) tryMoveToWiki(docID string) string {
	if c.wikiNodeToken == "" {
		return ""
	}

	data, err := c.call(http.MethodGet, "/wiki/v2/spaces/get_node?token="+url.QueryEscape(c.wikiNodeToken), nil)
	if err != nil {
		logger.Debug("wiki node lookup failed", "error", err)
		return ""
	}
	var node struct {
		Node struct {
			SpaceID   string `json:"space_id"`
			NodeToken string `json:"node_token"`
		} `json:"node"`
	}
	if err := json.Unmarshal(data, &node); err != nil {
		return ""
	}

	data, err = c.call(http.MethodPost, "/wiki/v2/spaces/"+node.Node.SpaceID+"/nodes/move_docs_to_wiki", map[string]string{
		"parent_wiki_token": node.Node.NodeToken,
		"obj_type":          "docx",
		"obj_token":         docID,
	})
	if err != nil {
		logger.Info("document stays outside wiki (insufficient permission)", "doc", docID)
		return ""
	}
	var moved struct {
		Node struct {
			NodeToken string `json:"node_token"`
		} `json:"node"`
	}
	if err := json.Unmarshal(data, &moved); err != nil || moved.Node.NodeToken == "" {
		return ""
	}
	wikiURL := "https://feishu.cn/wiki/" + moved.Node.NodeToken
	logger.Info("document moved to wiki", "url", wikiURL)
	return wikiURL
}

// RootBlockID returns the block children are appended under. For docx
// documents the root block id equals the document id.
func (c *Client) RootBlockID(docID string) string {
	return docID
}

// WriteBlocks appends children to a document block, splitting the
// payload into API-sized batches.
func (c *Client) WriteBlocks(docID, blockID string, children []Block) error {
	path := fmt.Sprintf("/docx/v1/documents/%s/blocks/%s/children?document_revision_id=-1", docID, blockID)

	for i := 0; i < len(children); i += writeBatchSize {
		end := i + writeBatchSize
		if end > len(children) {
			end = len(children)
		}
		if _, err := c.call(http.MethodPost, path, map[string]any{"children": children[i:end]}); err != nil {
			return fmt.Errorf("write blocks %d-%d: %w", i, end, err)
		}
		logger.Info("blocks written", "done", end, "total", len(children))
	}
	return nil
}

// SendGroupMessage posts a text message into a group chat.
func (c *Client) SendGroupMessage(chatID, text string) error {
	content, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}
	payload := map[string]string{
		"receive_id": chatID,
		"msg_type":   "text",
		"content":    string(content),
	}

	return retry.Do(3, 2*time.Second, func() error {
		_, err := c.call(http.MethodPost, "/im/v1/messages?receive_id_type=chat_id", payload)
		return err
	})
}

// FindChatIDByName resolves a group chat id by its display name,
// paging through the bot's chat list.
func (c *Client) FindChatIDByName(name string) (string, error) {
	pageToken := ""
	for {
		path := "/im/v1/chats?page_size=100"
		if pageToken != "" {
			path += "&page_token=" + url.QueryEscape(pageToken)
		}
		data, err := c.call(http.MethodGet, path, nil)
		if err != nil {
			return "", fmt.Errorf("list chats: %w", err)
		}

		var page struct {
			Items []struct {
				ChatID string `json:"chat_id"`
				Name   string `json:"name"`
			} `json:"items"`
			HasMore   bool   `json:"has_more"`
			PageToken string `json:"page_token"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return "", fmt.Errorf("list chats: decode: %w", err)
		}

		for _, item := range page.Items {
			if item.Name == name {
				return item.ChatID, nil
			}
		}
		if !page.HasMore {
			return "", nil
		}
		pageToken = page.PageToken
	}
}
