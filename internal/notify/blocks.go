package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"github.com/pders01/feedquiz/internal/storage"
)

const (
	timeLayout = "2006-01-02 15:04"

	// AnswerActionPrefix prefixes the action id of every answer button.
	AnswerActionPrefix = "quiz_answer_"
)

// Formatter renders Block Kit messages. Timestamps are shown in loc.
type Formatter struct {
	loc *time.Location
}

func NewFormatter(zone string) (*Formatter, error) {
	if zone == "" {
		return &Formatter{loc: time.UTC}, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("loading display zone %q: %w", zone, err)
	}
	return &Formatter{loc: loc}, nil
}

func plain(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, true, false)
}

func mrkdwn(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

func section(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(mrkdwn(text), nil, nil)
}

// Article renders a post summary.
func (f *Formatter) Article(title, summary, link string, published time.Time) []slack.Block {
	return []slack.Block{
		slack.NewHeaderBlock(plain("🆕 New AWS Blog post")),
		section(fmt.Sprintf("*%s*\n\n%s\n\n_Published: %s_", title, summary, published.In(f.loc).Format(timeLayout))),
		section(fmt.Sprintf("👉 <%s|Read the article>", link)),
		slack.NewDividerBlock(),
	}
}

// NoUpdates renders the message posted when nothing new was found.
func (f *Formatter) NoUpdates(now time.Time) []slack.Block {
	return []slack.Block{
		slack.NewHeaderBlock(plain("AWS Blog update check")),
		section(fmt.Sprintf("No new posts as of *%s*.", now.In(f.loc).Format(timeLayout))),
		slack.NewDividerBlock(),
	}
}

// Question renders a stored question with one button per option. Each
// button value is "{id}:{n}" with n counted from 1.
func (f *Formatter) Question(q *storage.QuizQuestion) []slack.Block {
	var options strings.Builder
	buttons := make([]slack.BlockElement, 0, len(q.Options))
	for i, opt := range q.Options {
		n := strconv.Itoa(i + 1)
		fmt.Fprintf(&options, "*%s.* %s\n", n, opt)
		buttons = append(buttons, slack.NewButtonBlockElement(AnswerActionPrefix+n, AnswerValue(q.ID, i+1), plain(n)))
	}

	return []slack.Block{
		slack.NewHeaderBlock(plain("📝 SAA practice question")),
		section(q.QuestionText),
		section(strings.TrimRight(options.String(), "\n")),
		slack.NewActionBlock("quiz_answers:"+q.ID, buttons...),
		slack.NewContextBlock("", mrkdwn(fmt.Sprintf("Based on <%s|this article>", q.ArticleURL))),
		slack.NewDividerBlock(),
	}
}

// Result renders the graded answer.
func (f *Formatter) Result(correct bool, explanation string) []slack.Block {
	verdict := "❌ *Incorrect...*"
	if correct {
		verdict = "✅ *Correct!*"
	}
	return []slack.Block{section(verdict + "\n\n" + explanation)}
}

// Notice renders a single-line user-facing message such as an error.
func (f *Formatter) Notice(text string) []slack.Block {
	return []slack.Block{section(text)}
}

// AnswerValue encodes a button value.
func AnswerValue(id string, option int) string {
	return id + ":" + strconv.Itoa(option)
}
