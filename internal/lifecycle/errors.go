package lifecycle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDeclined is returned by Delete when the user answers no to the prompt.
var ErrDeclined = errors.New("action declined")

// ErrorRule maps a server error message to a user-facing title and message.
type ErrorRule struct {
	Match   string
	Title   string
	Message string
}

// TrainErrorRules are checked in order; the first rule whose Match is a
// substring of the error message wins.
var TrainErrorRules = []ErrorRule{
	{
		Match:   "Failed to parse PDF",
		Title:   "Document Processing Error",
		Message: "The PDF file appears to be corrupted or invalid. Please try uploading a different file.",
	},
	{
		Match:   "invalid top-level pages dictionary",
		Title:   "PDF Format Error",
		Message: "This PDF file has an invalid format and cannot be processed. Please try a different PDF file.",
	},
}

// ClassifyTrainError returns the title and message shown for a failed train
// or retrain of fileName.
func ClassifyTrainError(err error, fileName string, isRetrain bool) (title, message string) {
	raw := ""
	if err != nil {
		raw = err.Error()
	}
	for _, rule := range TrainErrorRules {
		if strings.Contains(raw, rule.Match) {
			return rule.Title, rule.Message
		}
	}

	verb, title := "train", "Training failed"
	if isRetrain {
		verb, title = "retrain", "Retraining failed"
	}
	if strings.TrimSpace(raw) == "" {
		return title, fmt.Sprintf("Failed to %s %q.", verb, fileName)
	}
	return title, raw
}
