// Package llm wraps the OpenAI-compatible completion and image APIs used by
// the agent. Every function takes explicit credentials so callers can pass
// the process-wide configuration through rather than relying on ambient
// state.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// ErrEmptyResponse is returned when the API answers without usable content.
var ErrEmptyResponse = errors.New("empty response from generation API")

// Complete performs a plain chat completion and returns the generated text.
// A temperature of 0 leaves the model default in place.
func Complete(
	ctx context.Context,
	apiKey string,
	baseURL string,
	systemPrompt string,
	userPrompt string,
	model string,
	temperature float64,
) (string, error) {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)

	params := openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	}
	if temperature > 0 {
		params.Temperature = openai.Float(temperature)
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// CompleteWithSchema performs a chat completion whose response is
// constrained to the given JSON schema. It returns the response content as a
// JSON string.
func CompleteWithSchema(
	ctx context.Context,
	apiKey string,
	baseURL string,
	schema string,
	systemPrompt string,
	userPrompt string,
	model string,
) (string, error) {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)

	// The response_format field wants the schema as a map, while the system
	// prompt repeats it inline for models that ignore response_format.
	var schemaMap map[string]interface{}
	if err := json.Unmarshal([]byte(schema), &schemaMap); err != nil {
		return "", fmt.Errorf("failed to unmarshal schema string to map: %w", err)
	}

	systemMessage := fmt.Sprintf("%s Here's the json schema you need to adhere to: <schema>%s</schema>", systemPrompt, schema)

	params := openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemMessage),
			openai.UserMessage(userPrompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				Type: "json_schema",
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "response",
					Schema: schemaMap,
					Strict: openai.Bool(true),
				},
			},
		},
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateSchema renders the JSON schema for a Go struct (or pointer to
// one) as a string suitable for CompleteWithSchema. Field descriptions and
// required markers come from jsonschema struct tags.
func GenerateSchema(schemaType interface{}) (string, error) {
	r := jsonschema.Reflector{
		ExpandedStruct:             true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}

	t := reflect.TypeOf(schemaType)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	schema := r.ReflectFromType(t)
	b, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generated schema: %w", err)
	}
	return string(b), nil
}

// GenerateImage asks the image API for a single rendering of prompt and
// returns the URL of the generated artifact.
func GenerateImage(
	ctx context.Context,
	apiKey string,
	baseURL string,
	model string,
	prompt string,
) (string, error) {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)

	resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:  model,
		Prompt: prompt,
		N:      openai.Int(1),
		Size:   openai.ImageGenerateParamsSize256x256,
	})
	if err != nil {
		return "", fmt.Errorf("image generation request failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", ErrEmptyResponse
	}
	return resp.Data[0].URL, nil
}
