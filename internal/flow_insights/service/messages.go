package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sarayu-labs/chat-insights/internal/flow_insights/domain"
)

const PlaceholderMessage = "Please upload a file to see something here"

// UserMessage maps an analysis error to an HTTP status and the text shown in
// place of the diagram.
func UserMessage(err error, filename, column string) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFile), errors.Is(err, domain.ErrDecodeFailed):
		return http.StatusBadRequest, "Did you upload the correct file? " + filename
	case errors.Is(err, domain.ErrMissingColumn):
		return http.StatusUnprocessableEntity,
			fmt.Sprintf("The file you uploaded doesn't have the column '%s'. Try again with a different file?", column)
	default:
		return http.StatusInternalServerError, fmt.Sprintf("Something went wrong, see if this helps? %v", err)
	}
}
