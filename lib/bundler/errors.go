package bundler

import (
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// Error carries the messages of a failed esbuild build.
type Error struct {
	Messages []api.Message
}

func (e *Error) Error() string {
	errors := api.FormatMessages(e.Messages, api.FormatMessagesOptions{
		Kind: api.ErrorMessage,
	})
	return strings.TrimSpace(strings.Join(errors, "\n"))
}
