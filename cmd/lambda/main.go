//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/caarlos0/env/v11"

	"github.com/sysu-ecnc-dev/commute-puzzle/backend/internal/stateless"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

func newHandler(cfg stateless.Config) func(context.Context, events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	return func(_ context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
		body := event.Body
		if event.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(body)
			if err != nil {
				return respond(http.StatusBadRequest, stateless.ErrorResponse{Error: "请求体不是合法的 base64"})
			}
			body = string(decoded)
		}

		return respond(stateless.Handle(cfg, body))
	}
}

func respond(status int, v any) (events.LambdaFunctionURLResponse, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return events.LambdaFunctionURLResponse{}, err
	}
	return events.LambdaFunctionURLResponse{StatusCode: status, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := stateless.Config{}
	if err := env.Parse(&cfg); err != nil {
		logger.Error("无法加载配置", "error", err)
		os.Exit(1)
	}

	lambda.Start(newHandler(cfg))
}
