package voice

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxTTSChunk is the longest text accepted by one TTS request.
const MaxTTSChunk = 200

const ttsEndpoint = "https://translate.google.com/translate_tts"

type FileTrack struct {
	Path string
}

func (f FileTrack) Name() string { return "file:" + f.Path }

func (f FileTrack) Open(context.Context) (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// TTSTrack fetches synthesized speech for one chunk of text.
type TTSTrack struct {
	Text   string
	Lang   string
	Client *http.Client
	// Endpoint overrides the TTS service URL; tests point it at httptest.
	Endpoint string
}

func (t TTSTrack) Name() string { return "tts:" + t.Text }

func (t TTSTrack) Open(ctx context.Context) (io.ReadCloser, error) {
	endpoint := t.Endpoint
	if endpoint == "" {
		endpoint = ttsEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, TTSURL(endpoint, t.Text, t.Lang), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tts: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch tts: status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// TTSURL builds the request URL for text in lang.
func TTSURL(endpoint, text, lang string) string {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("q", text)
	q.Set("tl", lang)
	q.Set("total", "1")
	q.Set("idx", "0")
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(text)))
	q.Set("client", "tw-ob")
	q.Set("prev", "input")
	q.Set("ttsspeed", "1")
	return endpoint + "?" + q.Encode()
}

// Chunk splits text into pieces of at most max runes, cutting at the last
// space, comma or period that fits. Text without such a boundary is cut hard.
// A max below 1 means no limit.
func Chunk(text string, max int) []string {
	rs := []rune(strings.TrimSpace(text))
	if max < 1 {
		max = len(rs)
	}
	var out []string
	for len(rs) > 0 {
		if len(rs) <= max {
			out = append(out, string(rs))
			break
		}

		head, rest := rs[:max], rs[max:]
		for i := max; i > 0; i-- {
			if i < len(rs) && rs[i] == ' ' {
				head, rest = rs[:i], rs[i+1:]
				break
			}
			if i < max && (rs[i] == ',' || rs[i] == '.') {
				head, rest = rs[:i+1], rs[i+1:]
				break
			}
		}

		if part := strings.TrimSpace(string(head)); part != "" {
			out = append(out, part)
		}
		rs = []rune(strings.TrimSpace(string(rest)))
	}
	return out
}
