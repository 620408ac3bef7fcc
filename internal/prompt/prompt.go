// internal/prompt/prompt.go
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"reddit-digest/internal/models"
)

const (
	QuestionPrompt   = "Please ask a question you want an answer to > "
	KeywordPrompt    = "Please enter ONE keyword relating to your request > "
	SubredditsPrompt = "Please enter related subreddits (separated by commas, no spaces) > "
)

var ErrNoInput = errors.New("input closed before all answers were given")

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask writes label and reads one line. A final line without a newline is
// accepted; end of input before any text is ErrNoInput.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("read answer: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// ReadQuery asks the three questions in order and validates the answers.
func (p *Prompter) ReadQuery() (models.SearchQuery, error) {
	question, err := p.Ask(QuestionPrompt)
	if err != nil {
		return models.SearchQuery{}, err
	}

	keyword, err := p.Ask(KeywordPrompt)
	if err != nil {
		return models.SearchQuery{}, err
	}

	subreddits, err := p.Ask(SubredditsPrompt)
	if err != nil {
		return models.SearchQuery{}, err
	}

	query := models.SearchQuery{
		Question:   strings.TrimSpace(question),
		Keyword:    strings.TrimSpace(keyword),
		Subreddits: models.ParseSubreddits(subreddits),
	}

	if err := query.Validate(); err != nil {
		return models.SearchQuery{}, err
	}

	return query, nil
}
