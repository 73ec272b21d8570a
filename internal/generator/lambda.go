package generator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// LambdaInvoker is the subset of the Lambda client used for generation.
type LambdaInvoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaRequest is the payload sent to a generation function.
type LambdaRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// LambdaResponse is the payload a generation function returns.
type LambdaResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// LambdaGenerator delegates generation to a remote Lambda function.
type LambdaGenerator struct {
	client   LambdaInvoker
	function string
	model    string
}

func NewLambdaGenerator(ctx context.Context, function, model string) (*LambdaGenerator, error) {
	if function == "" {
		return nil, fmt.Errorf("Lambda function name is required")
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewLambdaGeneratorWithClient(lambda.NewFromConfig(cfg), function, model), nil
}

func NewLambdaGeneratorWithClient(client LambdaInvoker, function, model string) *LambdaGenerator {
	return &LambdaGenerator{client: client, function: function, model: model}
}

func (g *LambdaGenerator) Name() string {
	return "lambda"
}

func (g *LambdaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(LambdaRequest{Prompt: prompt, Model: g.model})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	result, err := g.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: aws.String(g.function),
		Payload:      payload,
	})
	if err != nil {
		return "", fmt.Errorf("failed to invoke %s: %w", g.function, err)
	}

	if result.FunctionError != nil {
		return "", fmt.Errorf("lambda error: %s", aws.ToString(result.FunctionError))
	}

	var resp LambdaResponse
	if err := json.Unmarshal(result.Payload, &resp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Error != "" {
		return "", fmt.Errorf("generator error: %s", resp.Error)
	}
	if resp.Text == "" {
		return "", fmt.Errorf("empty response from %s", g.function)
	}

	return resp.Text, nil
}
