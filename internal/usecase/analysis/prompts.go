package analysis

import (
	"encoding/json"
	"fmt"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
)

// Word budgets per summary depth.
var depthInstructions = map[string]string{
	entities.SummaryDepthShort:    "Create a very brief summary (around 50-75 words)",
	entities.SummaryDepthMedium:   "Create a concise summary (around 100 words)",
	entities.SummaryDepthDetailed: "Create a comprehensive summary (around 125-150 words)",
}

func depthInstruction(depth string) string {
	if instr, ok := depthInstructions[depth]; ok {
		return instr
	}
	return depthInstructions[entities.SummaryDepthMedium]
}

// buildSummaryPrompt asks for the structured summary shape. Models that
// ignore the JSON instruction and answer with a plain paragraph are still
// usable: the parser falls back to the clean_summary shape.
func buildSummaryPrompt(depth, transcriptText string) string {
	return fmt.Sprintf(`Analyze this video transcript and create a study summary.

%s

Transcript:
%s

Return as JSON:
{
    "overview": "A flowing paragraph summarizing the video",
    "key_points": ["point 1", "point 2"],
    "main_topics": ["topic 1", "topic 2"]
}

Requirements:
- Write in clear, simple language
- Focus on the main content and key takeaways
- Make it educational and easy to understand
- Avoid technical jargon unless necessary`, depthInstruction(depth), transcriptText)
}

func buildDifficultyPrompt(transcriptText string) string {
	return fmt.Sprintf(`Analyze this educational content and determine its difficulty level.

Content:
%s

Classify as: beginner, intermediate, or advanced.

Consider:
- Technical terminology used
- Complexity of concepts
- Assumed prior knowledge
- Pace of explanation

Return only the difficulty level (beginner/intermediate/advanced).`, transcriptText)
}

// transcriptChunk is the unit the timestamp prompt works over.
type transcriptChunk struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// buildTranscriptChunks groups segments into ~chunkSize character windows so
// the topic prompt sees timing alongside text.
func buildTranscriptChunks(t *entities.Transcript, chunkSize int) []transcriptChunk {
	if chunkSize <= 0 {
		chunkSize = 1000
	}

	var chunks []transcriptChunk
	current := transcriptChunk{}
	for _, seg := range t.Segments {
		if current.Text != "" && len(current.Text)+len(seg.Text) > chunkSize {
			current.EndTime = seg.Start
			chunks = append(chunks, current)
			current = transcriptChunk{Text: seg.Text, StartTime: seg.Start, EndTime: seg.End}
			continue
		}
		if current.Text == "" {
			current.StartTime = seg.Start
			current.Text = seg.Text
		} else {
			current.Text += " " + seg.Text
		}
		current.EndTime = seg.End
	}
	if current.Text != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

func buildTimestampsPrompt(chunks []transcriptChunk) string {
	encoded, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		encoded = []byte("[]")
	}

	return fmt.Sprintf(`Analyze these transcript chunks and identify distinct topics with their timestamps.

Transcript chunks:
%s

For each topic, provide:
- title: A clear, concise topic name
- start_time: The timestamp when this topic begins (in seconds)
- description: A brief description of what's covered
- keywords: 3-5 relevant keywords

Return as JSON array:
[
    {
        "title": "Topic Name",
        "start_time": 120,
        "description": "Description of the topic",
        "keywords": ["keyword1", "keyword2", "keyword3"]
    }
]

Focus on natural topic transitions and educational value.`, encoded)
}

func buildComprehensiveQuizPrompt(summaryText, difficulty, transcriptText string) string {
	return fmt.Sprintf(`Create a comprehensive quiz based on this educational video content.

Video Summary:
%s
Difficulty: %s

Transcript:
%s

Generate 5-8 multiple choice questions that:
1. Test understanding of key concepts
2. Cover different difficulty levels (easy, medium, hard)
3. Include practical application questions
4. Have clear, unambiguous answers
5. Provide helpful explanations for correct answers

Return as JSON:
{
    "title": "Comprehensive Quiz",
    "description": "Test your understanding of the entire video content",
    "questions": [
        {
            "question": "Question text here?",
            "options": ["A. Option 1", "B. Option 2", "C. Option 3", "D. Option 4"],
            "correct_answer": "A. Option 1",
            "explanation": "Explanation of why this is correct",
            "difficulty": "easy|medium|hard",
            "topic": "General"
        }
    ],
    "total_questions": 5,
    "estimated_time": 10
}

Make questions engaging and educational.`, summaryText, difficulty, transcriptText)
}

func buildFocusedQuizPrompt(summaryText, difficulty, transcriptText string) string {
	return fmt.Sprintf(`Create a focused quiz based on this educational video content.

Video Summary:
%s
Difficulty: %s

Transcript:
%s

Generate 3-5 multiple choice questions that:
1. Focus on practical applications
2. Test deeper understanding
3. Include scenario-based questions
4. Have clear, correct answers
5. Provide helpful explanations

Return as JSON:
{
    "title": "Advanced Concepts Quiz",
    "description": "Test your deeper understanding of key concepts",
    "questions": [
        {
            "question": "Question about advanced concepts?",
            "options": ["A. Option 1", "B. Option 2", "C. Option 3", "D. Option 4"],
            "correct_answer": "A. Option 1",
            "explanation": "Explanation",
            "difficulty": "medium",
            "topic": "Advanced Concepts"
        }
    ],
    "total_questions": 3,
    "estimated_time": 5
}`, summaryText, difficulty, transcriptText)
}

func buildFlashcardsPrompt(summaryText, transcriptText string) string {
	return fmt.Sprintf(`Create flashcards based on this educational content.

Video Summary:
%s

Transcript:
%s

Generate 10-15 flashcards in this format:
[
    {
        "front": "Question or concept",
        "back": "Answer or explanation"
    }
]

Focus on:
- Key definitions
- Important concepts
- Quick facts
- Common misconceptions`, summaryText, transcriptText)
}
