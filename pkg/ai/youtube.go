package ai

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
	"github.com/studybuddy-team/study-buddy/pkg/config"
)

// YouTubeClient fetches video metadata and caption transcripts over the
// public endpoints: oEmbed for the title, timedtext for captions.
type YouTubeClient struct {
	baseURL   string
	oembedURL string
	language  string
	client    *http.Client
}

// NewYouTubeClient creates a client using values from the provided config.
// Pass a nil config to use defaults.
func NewYouTubeClient(cfg *config.YouTubeConfig) *YouTubeClient {
	base := "https://www.youtube.com"
	oembed := "https://www.youtube.com/oembed"
	lang := "en"
	timeout := 30 * time.Second

	if cfg != nil {
		if cfg.BaseURL != "" {
			base = cfg.BaseURL
		}
		if cfg.OEmbedURL != "" {
			oembed = cfg.OEmbedURL
		}
		if cfg.Language != "" {
			lang = cfg.Language
		}
		if cfg.HTTPTimeout > 0 {
			timeout = time.Duration(cfg.HTTPTimeout) * time.Second
		}
	}

	return &YouTubeClient{
		baseURL:   base,
		oembedURL: oembed,
		language:  lang,
		client:    &http.Client{Timeout: timeout},
	}
}

// ExtractVideoID pulls the video id out of the supported URL shapes:
// youtu.be/<id>, /watch?v=<id>, /embed/<id>, /v/<id>, /shorts/<id>.
func ExtractVideoID(rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	switch host {
	case "youtu.be":
		if id := strings.Trim(parsed.Path, "/"); id != "" {
			return firstPathSegment(id), nil
		}
	case "youtube.com", "m.youtube.com":
		if parsed.Path == "/watch" {
			if id := parsed.Query().Get("v"); id != "" {
				return id, nil
			}
		}
		for _, prefix := range []string{"/embed/", "/v/", "/shorts/"} {
			if strings.HasPrefix(parsed.Path, prefix) {
				if id := firstPathSegment(strings.TrimPrefix(parsed.Path, prefix)); id != "" {
					return id, nil
				}
			}
		}
	}
	return "", fmt.Errorf("not a recognized YouTube URL: %s", rawURL)
}

func firstPathSegment(p string) string {
	if i := strings.IndexByte(p, '/'); i != -1 {
		return p[:i]
	}
	return p
}

type oembedResponse struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

// VideoInfo is the metadata subset the analysis pipeline needs.
type VideoInfo struct {
	VideoID string
	Title   string
	Channel string
}

// GetVideoInfo fetches the title and channel via oEmbed. Duration is not in
// the oEmbed payload; the pipeline estimates it from the transcript tail.
func (y *YouTubeClient) GetVideoInfo(ctx context.Context, videoID string) (*VideoInfo, error) {
	endpoint := fmt.Sprintf("%s?url=%s&format=json",
		y.oembedURL, url.QueryEscape(entities.WatchURL(videoID)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oembed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("video %s not found", videoID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oembed returned status %d", resp.StatusCode)
	}

	var body oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode oembed response: %w", err)
	}

	return &VideoInfo{
		VideoID: videoID,
		Title:   body.Title,
		Channel: body.AuthorName,
	}, nil
}

// GetTranscript fetches the caption track for a video. It asks timedtext for
// the json3 format first and falls back to the XML track. An empty track
// means the video has no captions; callers decide whether that is fatal.
func (y *YouTubeClient) GetTranscript(ctx context.Context, videoID string) (*entities.Transcript, error) {
	for _, format := range []string{"json3", ""} {
		segments, err := y.fetchCaptionTrack(ctx, videoID, format)
		if err != nil {
			return nil, err
		}
		if len(segments) > 0 {
			return entities.NewTranscript(videoID, y.language, segments), nil
		}
	}
	return nil, nil
}

func (y *YouTubeClient) fetchCaptionTrack(ctx context.Context, videoID, format string) ([]entities.TranscriptSegment, error) {
	endpoint := fmt.Sprintf("%s/api/timedtext?v=%s&lang=%s", y.baseURL, url.QueryEscape(videoID), y.language)
	if format != "" {
		endpoint += "&fmt=" + format
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timedtext request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}

	segments, err := ParseCaptions(string(body))
	if err != nil {
		return nil, err
	}
	return segments, nil
}

// ParseCaptions parses caption data in any of the formats the caption
// endpoints serve: json3 events, timedtext XML, or SRT.
func ParseCaptions(content string) ([]entities.TranscriptSegment, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "{") {
		return parseCaptionJSON(trimmed)
	}
	if strings.HasPrefix(trimmed, "<") {
		return parseCaptionXML(trimmed)
	}
	return parseCaptionSRT(trimmed)
}

// json3 caption shape: {"events":[{"tStartMs":0,"dDurationMs":1000,"segs":[{"utf8":"..."}]}]}
type captionJSON struct {
	Events []struct {
		StartMs    int64 `json:"tStartMs"`
		DurationMs int64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func parseCaptionJSON(content string) ([]entities.TranscriptSegment, error) {
	var data captionJSON
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, fmt.Errorf("failed to parse caption JSON: %w", err)
	}

	var segments []entities.TranscriptSegment
	for _, event := range data.Events {
		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}
		cleaned := strings.TrimSpace(strings.ReplaceAll(text.String(), "\n", " "))
		if cleaned == "" {
			continue
		}
		start := float64(event.StartMs) / 1000.0
		segments = append(segments, entities.TranscriptSegment{
			Start: start,
			End:   start + float64(event.DurationMs)/1000.0,
			Text:  cleaned,
		})
	}
	return segments, nil
}

// timedtext XML shape: <transcript><text start="1.3" dur="2.4">...</text></transcript>
type captionXML struct {
	Texts []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Body  string  `xml:",chardata"`
	} `xml:"text"`
}

func parseCaptionXML(content string) ([]entities.TranscriptSegment, error) {
	var data captionXML
	if err := xml.Unmarshal([]byte(content), &data); err != nil {
		return nil, fmt.Errorf("failed to parse caption XML: %w", err)
	}

	var segments []entities.TranscriptSegment
	for _, t := range data.Texts {
		cleaned := strings.TrimSpace(t.Body)
		if cleaned == "" {
			continue
		}
		segments = append(segments, entities.TranscriptSegment{
			Start: t.Start,
			End:   t.Start + t.Dur,
			Text:  cleaned,
		})
	}
	return segments, nil
}

// SRT shape: numbered blocks with "00:00:15,000 --> 00:00:17,500" time lines.
func parseCaptionSRT(content string) ([]entities.TranscriptSegment, error) {
	var segments []entities.TranscriptSegment

	blocks := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n")
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		var start, end float64
		var haveTime bool
		var textLines []string
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.Contains(line, "-->") {
				parts := strings.SplitN(line, "-->", 2)
				start = parseSRTTime(parts[0])
				end = parseSRTTime(parts[1])
				haveTime = true
				continue
			}
			if _, err := strconv.Atoi(line); err == nil && !haveTime {
				continue // block counter
			}
			if haveTime {
				textLines = append(textLines, line)
			}
		}
		if haveTime && len(textLines) > 0 {
			segments = append(segments, entities.TranscriptSegment{
				Start: start,
				End:   end,
				Text:  strings.Join(textLines, " "),
			})
		}
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("no parseable caption segments")
	}
	return segments, nil
}

// parseSRTTime converts "HH:MM:SS,mmm" to seconds, 0 on malformed input.
func parseSRTTime(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0
	}
	hours, err1 := strconv.Atoi(parts[0])
	minutes, err2 := strconv.Atoi(parts[1])
	seconds, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0
	}
	return float64(hours*3600+minutes*60) + seconds
}
