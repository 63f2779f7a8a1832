// Package pipeline drives one run: fetch the feed, keep recent posts, then
// for each post summarize, publish, classify and, when relevant, generate,
// store and publish a quiz question.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/slack-go/slack"

	"github.com/pders01/feedquiz/internal/debuglog"
	"github.com/pders01/feedquiz/internal/feed"
	"github.com/pders01/feedquiz/internal/metrics"
	"github.com/pders01/feedquiz/internal/notify"
	"github.com/pders01/feedquiz/internal/quiz"
	"github.com/pders01/feedquiz/internal/storage"
)

type Summarizer interface {
	Summarize(ctx context.Context, content string) (string, error)
}

type Classifier interface {
	Classify(ctx context.Context, content string) (bool, error)
}

type Generator interface {
	Generate(ctx context.Context, content string) (quiz.Draft, bool, error)
}

// Indexer receives every stored question. Indexing is best effort.
type Indexer interface {
	Add(q *storage.QuizQuestion) error
}

type Publisher interface {
	Publish(ctx context.Context, blocks []slack.Block) bool
}

// Deps are the collaborators of a Pipeline. Now and Window default to the
// wall clock and feed.DefaultWindow.
type Deps struct {
	Source     feed.Source
	Summarizer Summarizer
	Classifier Classifier
	Generator  Generator
	Store      storage.Store
	Publisher  Publisher
	Formatter  *notify.Formatter
	Indexer    Indexer
	Window     time.Duration
	Now        func() time.Time
}

type Pipeline struct {
	deps Deps
}

func New(deps Deps) *Pipeline {
	if deps.Window <= 0 {
		deps.Window = feed.DefaultWindow
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Pipeline{deps: deps}
}

// Run executes one pipeline invocation. It never panics; any failure is
// reported in the Result. Messages already published and questions already
// stored before a failure are kept.
func (p *Pipeline) Run(ctx context.Context) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res.fail(fmt.Errorf("panic: %v", r))
		}
		metrics.RecordRun(res.OK)
		if res.Err != nil {
			debuglog.Errorf("pipeline run failed: %v", res.Err)
		}
	}()

	now := p.deps.Now().UTC()

	articles, err := p.deps.Source.Fetch(ctx)
	if err != nil {
		res.fail(fmt.Errorf("fetching feed: %w", err))
		return res
	}

	recent := feed.FilterRecent(articles, now, p.deps.Window)
	debuglog.Infof("feed returned %d posts, %d within %s", len(articles), len(recent), p.deps.Window)

	if len(recent) == 0 {
		ok := p.deps.Publisher.Publish(ctx, p.deps.Formatter.NoUpdates(now))
		metrics.RecordPublish("no_updates", ok)
		res.OK = true
		res.Message = MessageNoUpdates
		res.NoUpdatesPublished = ok
		return res
	}

	for _, article := range recent {
		outcome, err := p.process(ctx, article, now)
		res.Articles = append(res.Articles, outcome)
		if outcome.QuestionID != "" {
			res.QuestionsCreated++
		}
		if err != nil {
			res.fail(fmt.Errorf("processing %q: %w", article.Title, err))
			return res
		}
	}

	res.OK = true
	res.Message = MessageProcessed
	return res
}

// process runs the per-article steps. A failed publish is logged and does
// not stop the following steps.
func (p *Pipeline) process(ctx context.Context, article feed.Article, now time.Time) (ArticleOutcome, error) {
	outcome := ArticleOutcome{
		Title:     article.Title,
		Link:      article.Link,
		Published: article.Published,
	}
	log := debuglog.WithFields(map[string]interface{}{"article": article.Link})

	summary, err := p.deps.Summarizer.Summarize(ctx, article.Body)
	if err != nil {
		return outcome, err
	}
	metrics.ArticlesProcessed.Inc()

	outcome.SummaryPublished = p.deps.Publisher.Publish(ctx,
		p.deps.Formatter.Article(article.Title, summary, article.Link, article.Published))
	metrics.RecordPublish("article", outcome.SummaryPublished)
	if !outcome.SummaryPublished {
		log.Warnf("article summary was not published")
	}

	relevant, err := p.deps.Classifier.Classify(ctx, article.Body)
	if err != nil {
		return outcome, err
	}
	outcome.Relevant = relevant
	if !relevant {
		log.Debugf("article not relevant to the syllabus")
		return outcome, nil
	}

	draft, ok, err := p.deps.Generator.Generate(ctx, article.Body)
	if err != nil {
		return outcome, err
	}
	if !ok {
		metrics.QuestionsSkipped.Inc()
		log.Warnf("no usable question generated, skipping")
		return outcome, nil
	}

	q := storage.NewQuizQuestion(article.Link, now)
	q.QuestionText = draft.QuestionText
	q.Options = draft.Options
	q.CorrectOptionIndex = draft.CorrectOptionIndex
	q.ExplanationCorrect = draft.ExplanationCorrect
	q.ExplanationOthers = draft.ExplanationOthers

	id, err := p.deps.Store.Put(ctx, q)
	if err != nil {
		return outcome, err
	}
	outcome.QuestionID = id
	metrics.QuestionsCreated.Inc()

	if p.deps.Indexer != nil {
		if err := p.deps.Indexer.Add(q); err != nil {
			log.With("question_id", id).Warnf("indexing question: %v", err)
		}
	}

	outcome.QuestionPublished = p.deps.Publisher.Publish(ctx, p.deps.Formatter.Question(q))
	metrics.RecordPublish("question", outcome.QuestionPublished)
	if !outcome.QuestionPublished {
		log.With("question_id", id).Warnf("question was not published")
	}
	return outcome, nil
}
