package ai

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// диагностика ошибок OpenAI
func describeOpenAIError(err error) string {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "openai request error: " + err.Error()
		}
		return err.Error()
	}

	switch apiErr.HTTPStatusCode {
	case http.StatusUnauthorized:
		return "invalid OpenAI API key: " + apiErr.Message
	case http.StatusNotFound:
		return "model not found: " + apiErr.Message
	case http.StatusTooManyRequests:
		return "OpenAI rate limit exceeded: " + apiErr.Message
	case http.StatusBadRequest:
		return "bad request to OpenAI: " + apiErr.Message
	}
	if apiErr.HTTPStatusCode >= 500 {
		return "OpenAI internal error: " + apiErr.Message
	}
	return err.Error()
}
