package analysis

// AnalyzeRequest is the body of POST /api/analyze and /api/analyze/async
type AnalyzeRequest struct {
	URL          string `json:"url" validate:"required,youtube_url"`
	SummaryDepth string `json:"summary_depth" validate:"omitempty,oneof=short medium detailed"`
}

// GradeQuizRequest carries the sparse answer mapping for quiz grading.
// Keys are question indexes; a missing key grades as not answered.
type GradeQuizRequest struct {
	Answers map[int]string `json:"answers" validate:"required"`
}

// FlashcardsRequest is the body of POST /api/generate-flashcards. Either a
// stored video id or raw transcript text must be supplied.
type FlashcardsRequest struct {
	VideoID    string `json:"video_id" validate:"required_without=Transcript"`
	Transcript string `json:"transcript" validate:"required_without=VideoID"`
	Summary    string `json:"summary"`
}
