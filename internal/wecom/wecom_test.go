package wecom

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestSendText(t *testing.T) {
	var got struct {
		MsgType string `json:"msgtype"`
		Text    struct {
			Content        string   `json:"content"`
			MentionMobiles []string `json:"mentioned_mobile_list"`
		} `json:"text"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		fmt.Fprint(w, `{"errcode":0,"errmsg":"ok"}`)
	}))
	defer srv.Close()

	b := NewBot(srv.URL, "", []string{"13800000000"})
	if err := b.SendText("今日 AI 摘要"); err != nil {
		t.Fatal(err)
	}
	if got.MsgType != "text" {
		t.Errorf("msgtype = %q", got.MsgType)
	}
	if got.Text.Content != "今日 AI 摘要" {
		t.Errorf("content = %q", got.Text.Content)
	}
	if len(got.Text.MentionMobiles) != 1 || got.Text.MentionMobiles[0] != "13800000000" {
		t.Errorf("mentions = %v", got.Text.MentionMobiles)
	}
}

func TestSendTextSigned(t *testing.T) {
	const secret = "robot-secret"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		ts := q.Get("timestamp")
		if ts == "" {
			t.Error("missing timestamp parameter")
		}
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(ts + "\n" + secret))
		want := base64.StdEncoding.EncodeToString(mac.Sum(nil))
		if q.Get("sign") != want {
			t.Errorf("sign = %q, want %q", q.Get("sign"), want)
		}
		fmt.Fprint(w, `{"errcode":0,"errmsg":"ok"}`)
	}))
	defer srv.Close()

	b := NewBot(srv.URL+"/send?key=abc", secret, nil)
	if err := b.SendText("signed message"); err != nil {
		t.Fatal(err)
	}
}

func TestSendTextWithoutWebhookIsNoop(t *testing.T) {
	b := NewBot("", "secret", nil)
	if err := b.SendText("dropped"); err != nil {
		t.Fatalf("missing webhook must be a silent no-op, got %v", err)
	}
}

func TestSignedURLSeparator(t *testing.T) {
	now := time.Unix(1770000000, 0)

	plain := signedURL("https://example.com/hook", "s", now)
	if !strings.Contains(plain, "/hook?timestamp=1770000000&sign=") {
		t.Errorf("bare url must get ?, got %q", plain)
	}

	keyed := signedURL("https://example.com/hook?key=abc", "s", now)
	if !strings.Contains(keyed, "key=abc&timestamp=1770000000&sign=") {
		t.Errorf("url with query must get &, got %q", keyed)
	}

	u, err := url.Parse(keyed)
	if err != nil {
		t.Fatal(err)
	}
	if u.Query().Get("sign") == "" {
		t.Error("sign must survive URL parsing")
	}
}
