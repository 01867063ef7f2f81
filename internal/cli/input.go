package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/rustyeddy/tradejournal/journal"
)

// ErrInvalidInput rejects a trade whose prices or quantity do not parse.
// Nothing is recorded.
var ErrInvalidInput = errors.New("invalid input: enter numeric values for price and an integer for quantity")

// tradeInput is a trade as typed by the user.
type tradeInput struct {
	Entry    string `survey:"entry"`
	Quantity string `survey:"quantity"`
	Exit     string `survey:"exit"`
}

func (in tradeInput) parse() (entry float64, qty int64, exit float64, err error) {
	if entry, err = parsePrice(in.Entry); err != nil {
		return 0, 0, 0, err
	}
	if qty, err = parseQuantity(in.Quantity); err != nil {
		return 0, 0, 0, err
	}
	if exit, err = parsePrice(in.Exit); err != nil {
		return 0, 0, 0, err
	}
	return entry, qty, exit, nil
}

func parsePrice(s string) (float64, error) {
	v, err := journal.ParsePrice(s)
	if err != nil {
		return 0, ErrInvalidInput
	}
	return v, nil
}

func parseQuantity(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, ErrInvalidInput
	}
	return v, nil
}

func validatePrice(val interface{}) error {
	_, err := parsePrice(val.(string))
	return err
}

func validateQuantity(val interface{}) error {
	_, err := parseQuantity(val.(string))
	return err
}

// surveyPrompt asks for the trade on the terminal.
func surveyPrompt() (tradeInput, error) {
	qs := []*survey.Question{
		{
			Name: "entry",
			Prompt: &survey.Input{
				Message: "Enter entry price:",
				Help:    "Price the position was opened at, e.g. 4500.25",
			},
			Validate: validatePrice,
		},
		{
			Name: "quantity",
			Prompt: &survey.Input{
				Message: "Enter quantity:",
				Help:    "Whole contracts; negative for a short",
			},
			Validate: validateQuantity,
		},
		{
			Name: "exit",
			Prompt: &survey.Input{
				Message: "Enter exit price:",
				Help:    "Price the position was closed at",
			},
			Validate: validatePrice,
		},
	}

	var in tradeInput
	if err := survey.Ask(qs, &in); err != nil {
		return tradeInput{}, err
	}
	return in, nil
}
