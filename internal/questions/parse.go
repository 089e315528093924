package questions

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/certprep/internal/errors"
	"github.com/abhisek/certprep/internal/exam"
)

// Bank is the on-disk format of a question bank: either this object or a
// bare JSON array of questions.
type Bank struct {
	Exam      string          `json:"exam,omitempty"`
	Questions []exam.Question `json:"questions"`
}

// ParseQuestions reads and validates a question bank. Unlike generation,
// any invalid question fails the whole bank so authors see every problem.
func ParseQuestions(r io.Reader) (Bank, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Bank{}, errors.New(errors.CodeInvalidInput,
			errors.WithMessagef("read question bank"), errors.WithCause(err))
	}

	var bank Bank
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		err = json.Unmarshal(data, &bank.Questions)
	} else {
		err = json.Unmarshal(data, &bank)
	}
	if err != nil {
		return Bank{}, errors.New(errors.CodeInvalidInput,
			errors.WithMessagef("decode question bank"), errors.WithCause(err))
	}
	if len(bank.Questions) == 0 {
		return Bank{}, errors.InvalidInput("question bank has no questions")
	}

	valid, rejected := validate(bank.Questions, DefaultConfig().Validators)
	if len(rejected) > 0 {
		return Bank{}, errors.InvalidInput("%d invalid question(s):\n  %s",
			len(rejected), strings.Join(rejected, "\n  "))
	}
	bank.Questions = valid
	return bank, nil
}

// mustParse is ParseQuestions for embedded banks that are known good.
func mustParse(name string, r io.Reader) Bank {
	b, err := ParseQuestions(r)
	if err != nil {
		panic(fmt.Sprintf("embedded question bank %s: %v", name, err))
	}
	return b
}
