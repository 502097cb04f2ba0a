// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm asks an OpenAI-compatible chat model to read a paper's
// landing page and report the page range. It is the most expensive
// extraction strategy and runs last.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"text/template"
)

// maxPageText bounds how much page text goes into the prompt.
const maxPageText = 8000

// pagesPromptTmpl instructs the model to answer with the page range and
// nothing else, or the literal sentinel "not found".
var pagesPromptTmpl = template.Must(template.New("pages").Parse(`Extract the page range of the paper from the following web page content.

Page URL: {{.URL}}
{{if .Title}}Paper title: {{.Title}}
{{end}}
Page content:
{{.Text}}

Look carefully for:
1. A page range (such as "123-145", "pages 123-145", "pp. 123-145")
2. Page numbers given by the conference or journal listing
3. The paper's position in the proceedings

If you find the page range, reply with ONLY the range in the form "start-end", for example "123-145".
If you cannot find it, reply with ONLY "not found".

Do not include any other text in your reply.
`))

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ExtractPages sends the page text to the model and parses the page
// range out of its reply. Returns "" without error when the model
// reports it could not find pages.
func (c *Client) ExtractPages(ctx context.Context, pageText, pageURL, title string) (string, error) {
	if len(pageText) > maxPageText {
		pageText = pageText[:maxPageText] + "..."
	}

	var buf bytes.Buffer
	err := pagesPromptTmpl.Execute(&buf, struct {
		URL   string
		Title string
		Text  string
	}{URL: pageURL, Title: title, Text: pageText})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	reply, err := c.chat(ctx, buf.String())
	if err != nil {
		return "", err
	}
	return ParseReply(reply), nil
}

// chat performs one chat completion round trip and returns the
// assistant's reply text.
func (c *Client) chat(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling chat API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(cResp.Choices) == 0 {
		return "", fmt.Errorf("chat API returned no choices")
	}
	return cResp.Choices[0].Message.Content, nil
}

// Reply patterns, most specific label first; the bare range runs first
// because a well-behaved model replies with the range alone.
var replyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*[-–—]\s*(\d+)`),
	regexp.MustCompile(`pages?\s*[:：]\s*(\d+)\s*[-–—]\s*(\d+)`),
	regexp.MustCompile(`pp\.?\s*[:：]?\s*(\d+)\s*[-–—]\s*(\d+)`),
}

var anyNumber = regexp.MustCompile(`\d+`)

// ParseReply extracts a page range from a model reply. A reply saying
// the pages were not found yields "". When no labeled pattern matches,
// the first two numbers in the reply are taken as the range.
func ParseReply(reply string) string {
	reply = strings.ToLower(strings.TrimSpace(reply))

	if strings.Contains(reply, "not found") {
		return ""
	}

	for _, re := range replyPatterns {
		if m := re.FindStringSubmatch(reply); m != nil {
			return m[1] + "-" + m[2]
		}
	}

	nums := anyNumber.FindAllString(reply, -1)
	if len(nums) >= 2 {
		return nums[0] + "-" + nums[1]
	}
	return ""
}
