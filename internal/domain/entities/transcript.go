package entities

import "strings"

// TranscriptSegment is one caption cue with its timing window.
type TranscriptSegment struct {
	Start float64 `json:"start"` // seconds
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the full caption track of a video.
type Transcript struct {
	VideoID   string              `json:"video_id"`
	Language  string              `json:"language"`
	Segments  []TranscriptSegment `json:"segments"`
	FullText  string              `json:"full_text"`
	WordCount int                 `json:"word_count"`
}

// NewTranscript assembles a transcript from its segments, deriving the full
// text and word count.
func NewTranscript(videoID, language string, segments []TranscriptSegment) *Transcript {
	var b strings.Builder
	for i, seg := range segments {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(seg.Text)
	}
	full := strings.TrimSpace(b.String())
	return &Transcript{
		VideoID:   videoID,
		Language:  language,
		Segments:  segments,
		FullText:  full,
		WordCount: len(strings.Fields(full)),
	}
}

// DurationSeconds estimates the video duration from the last segment end.
func (t *Transcript) DurationSeconds() int {
	if len(t.Segments) == 0 {
		return 0
	}
	return int(t.Segments[len(t.Segments)-1].End)
}

// EstimatedReadingTime returns reading time in minutes at ~200 words/minute,
// never less than one minute.
func (t *Transcript) EstimatedReadingTime() int {
	minutes := t.WordCount / 200
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Truncate returns at most limit characters of the full text. The cap keeps
// prompts inside model token limits.
func (t *Transcript) Truncate(limit int) string {
	if limit <= 0 || len(t.FullText) <= limit {
		return t.FullText
	}
	return t.FullText[:limit]
}
