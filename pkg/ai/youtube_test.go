package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/studybuddy-team/study-buddy/pkg/config"
)

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?si=xyz", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}
	for _, tc := range cases {
		got, err := ExtractVideoID(tc.url)
		if err != nil {
			t.Fatalf("ExtractVideoID(%q) failed: %v", tc.url, err)
		}
		if got != tc.want {
			t.Fatalf("ExtractVideoID(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestExtractVideoID_Invalid(t *testing.T) {
	for _, u := range []string{
		"https://vimeo.com/12345",
		"https://www.youtube.com/channel/UCabc",
		"not a url at all ://",
		"https://www.youtube.com/watch",
	} {
		if id, err := ExtractVideoID(u); err == nil {
			t.Fatalf("expected error for %q, got id %q", u, id)
		}
	}
}

func TestParseCaptions_JSON3(t *testing.T) {
	content := `{"events":[
		{"tStartMs":0,"dDurationMs":3000,"segs":[{"utf8":"Welcome to "},{"utf8":"the video."}]},
		{"tStartMs":3000,"dDurationMs":2000,"segs":[{"utf8":"\n"}]},
		{"tStartMs":5000,"dDurationMs":2500,"segs":[{"utf8":"Loops come next."}]}
	]}`

	segments, err := ParseCaptions(content)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 non-empty segments, got %d", len(segments))
	}
	if segments[0].Text != "Welcome to the video." {
		t.Fatalf("unexpected first segment text %q", segments[0].Text)
	}
	if segments[1].Start != 5.0 || segments[1].End != 7.5 {
		t.Fatalf("unexpected timing %v-%v", segments[1].Start, segments[1].End)
	}
}

func TestParseCaptions_XML(t *testing.T) {
	content := `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0" dur="3.5">Welcome to the video.</text>
  <text start="3.5" dur="2">  </text>
  <text start="5.5" dur="4.25">Loops come next.</text>
</transcript>`

	segments, err := ParseCaptions(content)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 non-empty segments, got %d", len(segments))
	}
	if segments[1].Start != 5.5 || segments[1].End != 9.75 {
		t.Fatalf("unexpected timing %v-%v", segments[1].Start, segments[1].End)
	}
}

func TestParseCaptions_SRT(t *testing.T) {
	content := `1
00:00:00,000 --> 00:00:03,500
Welcome to the video.

2
00:01:05,250 --> 00:01:07,000
Loops come next.
On two lines.`

	segments, err := ParseCaptions(content)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[1].Start != 65.25 {
		t.Fatalf("unexpected start %v", segments[1].Start)
	}
	if segments[1].Text != "Loops come next. On two lines." {
		t.Fatalf("unexpected text %q", segments[1].Text)
	}
}

func TestGetTranscript_JSON3Track(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/timedtext" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("v") != "vid123" {
			t.Fatalf("unexpected video id %s", r.URL.Query().Get("v"))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"events":[{"tStartMs":0,"dDurationMs":60000,"segs":[{"utf8":"hello world"}]}]}`))
	}))
	defer ts.Close()

	client := NewYouTubeClient(&config.YouTubeConfig{BaseURL: ts.URL, Language: "en", HTTPTimeout: 5})

	transcript, err := client.GetTranscript(context.Background(), "vid123")
	if err != nil {
		t.Fatalf("GetTranscript failed: %v", err)
	}
	if transcript == nil {
		t.Fatal("expected a transcript")
	}
	if transcript.FullText != "hello world" {
		t.Fatalf("unexpected full text %q", transcript.FullText)
	}
	if transcript.WordCount != 2 {
		t.Fatalf("unexpected word count %d", transcript.WordCount)
	}
	if transcript.DurationSeconds() != 60 {
		t.Fatalf("unexpected duration %d", transcript.DurationSeconds())
	}
}

func TestGetTranscript_NoCaptions(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Empty body is how timedtext reports "no track".
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewYouTubeClient(&config.YouTubeConfig{BaseURL: ts.URL, Language: "en", HTTPTimeout: 5})

	transcript, err := client.GetTranscript(context.Background(), "vid123")
	if err != nil {
		t.Fatalf("GetTranscript failed: %v", err)
	}
	if transcript != nil {
		t.Fatalf("expected nil transcript for captionless video, got %+v", transcript)
	}
}

func TestGetVideoInfo(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"title":"Intro to Go","author_name":"Some Channel"}`))
	}))
	defer ts.Close()

	client := NewYouTubeClient(&config.YouTubeConfig{OEmbedURL: ts.URL, HTTPTimeout: 5})

	info, err := client.GetVideoInfo(context.Background(), "vid123")
	if err != nil {
		t.Fatalf("GetVideoInfo failed: %v", err)
	}
	if info.Title != "Intro to Go" || info.Channel != "Some Channel" {
		t.Fatalf("unexpected info %+v", info)
	}
}
