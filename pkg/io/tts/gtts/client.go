// Package gtts synthesizes speech through the Google Translate TTS
// endpoint and writes the result as an MP3 file.
package gtts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://translate.google.com"

// The endpoint rejects long inputs, so text is split into chunks and the
// returned MP3 segments are concatenated. MP3 frames are self-contained,
// concatenation yields a playable stream.
const maxChunkLen = 200

type Client struct {
	BaseURL string
	Lang    string        // e.g. "en"
	Client  *http.Client  // inject; default if nil
	Timeout time.Duration // request timeout per chunk
}

func New() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		Lang:    "en",
	}
}

// Synthesize converts text to speech and writes the MP3 to outputPath.
func (c *Client) Synthesize(ctx context.Context, text, outputPath string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("empty text")
	}

	chunks := splitChunks(text, maxChunkLen)

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	for i, chunk := range chunks {
		audio, err := c.fetchChunk(ctx, chunk, i, len(chunks))
		if err != nil {
			out.Close()
			os.Remove(outputPath)
			return err
		}
		if _, err := out.Write(audio); err != nil {
			out.Close()
			os.Remove(outputPath)
			return fmt.Errorf("write audio: %w", err)
		}
	}

	return out.Close()
}

func (c *Client) fetchChunk(ctx context.Context, chunk string, idx, total int) ([]byte, error) {
	u, err := url.Parse(c.BaseURL + "/translate_tts")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", c.Lang)
	q.Set("q", chunk)
	q.Set("idx", strconv.Itoa(idx))
	q.Set("total", strconv.Itoa(total))
	q.Set("textlen", strconv.Itoa(len([]rune(chunk))))
	u.RawQuery = q.Encode()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx2, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx2, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "audio/mpeg")

	hc := c.Client
	if hc == nil {
		hc = &http.Client{}
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tts http %d: %s", resp.StatusCode, string(b))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tts response: %w", err)
	}
	return audio, nil
}

// splitChunks breaks text into whitespace-separated chunks of at most max
// runes. A single token longer than max is hard-split.
func splitChunks(text string, max int) []string {
	var chunks []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, string(current))
			current = current[:0]
		}
	}

	for _, word := range strings.Fields(text) {
		runes := []rune(word)
		for len(runes) > max {
			flush()
			chunks = append(chunks, string(runes[:max]))
			runes = runes[max:]
		}
		needed := len(runes)
		if len(current) > 0 {
			needed++ // joining space
		}
		if len(current)+needed > max {
			flush()
		}
		if len(current) > 0 {
			current = append(current, ' ')
		}
		current = append(current, runes...)
	}
	flush()

	return chunks
}
