package pipeline

import (
	"encoding/json"
	"time"
)

const (
	MessageProcessed = "Successfully processed AWS blog posts"
	MessageNoUpdates = "No new posts in the last 24 hours"
)

// Result is the single outcome of a run.
type Result struct {
	OK                 bool
	Message            string
	Articles           []ArticleOutcome
	QuestionsCreated   int
	NoUpdatesPublished bool
	Err                error
}

// ArticleOutcome records what happened to one recent post.
type ArticleOutcome struct {
	Title             string
	Link              string
	Published         time.Time
	SummaryPublished  bool
	Relevant          bool
	QuestionID        string
	QuestionPublished bool
}

func (r *Result) fail(err error) {
	r.OK = false
	r.Err = err
	r.Message = "pipeline failed"
}

type processedArticle struct {
	Title      string `json:"title"`
	PostTime   string `json:"post_time"`
	QuestionID string `json:"question_id,omitempty"`
}

type summary struct {
	Message           string             `json:"message"`
	ProcessedArticles []processedArticle `json:"processed_articles,omitempty"`
	Count             int                `json:"count"`
	QuestionsCreated  int                `json:"questions_created"`
	Success           *bool              `json:"success,omitempty"`
	Error             string             `json:"error,omitempty"`
}

// Summary renders the result as the JSON body returned to the scheduler.
// Only articles whose summary was published are listed.
func (r Result) Summary(loc *time.Location) string {
	s := summary{
		Message:          r.Message,
		QuestionsCreated: r.QuestionsCreated,
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, a := range r.Articles {
		if !a.SummaryPublished {
			continue
		}
		s.ProcessedArticles = append(s.ProcessedArticles, processedArticle{
			Title:      a.Title,
			PostTime:   a.Published.In(loc).Format("2006-01-02 15:04"),
			QuestionID: a.QuestionID,
		})
	}
	s.Count = len(s.ProcessedArticles)
	if r.OK && r.Message == MessageNoUpdates {
		ok := r.NoUpdatesPublished
		s.Success = &ok
	}
	if r.Err != nil {
		s.Error = r.Err.Error()
	}

	data, err := json.Marshal(s)
	if err != nil {
		return `{"message":"pipeline failed"}`
	}
	return string(data)
}
