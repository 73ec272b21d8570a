package generator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoker struct {
	input  *lambda.InvokeInput
	output *lambda.InvokeOutput
	err    error
}

func (f *fakeInvoker) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	f.input = params
	return f.output, f.err
}

func payload(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestLambdaGenerator_Generate(t *testing.T) {
	inv := &fakeInvoker{output: &lambda.InvokeOutput{
		Payload: payload(t, LambdaResponse{Text: "a|||b"}),
	}}
	gen := NewLambdaGeneratorWithClient(inv, "palabra-generate", "m1")

	text, err := gen.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "a|||b", text)

	require.NotNil(t, inv.input)
	assert.Equal(t, "palabra-generate", *inv.input.FunctionName)

	var sent LambdaRequest
	require.NoError(t, json.Unmarshal(inv.input.Payload, &sent))
	assert.Equal(t, LambdaRequest{Prompt: "prompt", Model: "m1"}, sent)
}

func TestLambdaGenerator_Errors(t *testing.T) {
	fnErr := "Unhandled"
	tests := []struct {
		name    string
		inv     *fakeInvoker
		wantErr string
	}{
		{
			name:    "invoke failure",
			inv:     &fakeInvoker{err: errors.New("access denied")},
			wantErr: "access denied",
		},
		{
			name:    "function error",
			inv:     &fakeInvoker{output: &lambda.InvokeOutput{FunctionError: &fnErr}},
			wantErr: "lambda error: Unhandled",
		},
		{
			name:    "error payload",
			inv:     &fakeInvoker{output: &lambda.InvokeOutput{Payload: []byte(`{"error":"quota"}`)}},
			wantErr: "generator error: quota",
		},
		{
			name:    "empty text",
			inv:     &fakeInvoker{output: &lambda.InvokeOutput{Payload: []byte(`{"text":""}`)}},
			wantErr: "empty response",
		},
		{
			name:    "bad payload",
			inv:     &fakeInvoker{output: &lambda.InvokeOutput{Payload: []byte(`nope`)}},
			wantErr: "failed to parse response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLambdaGeneratorWithClient(tt.inv, "fn", "").Generate(context.Background(), "p")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
