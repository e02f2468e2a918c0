package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.uber.org/zap"

	"github.com/janisto/connect-provisioner/internal/config"
	applog "github.com/janisto/connect-provisioner/internal/platform/logging"
	"github.com/janisto/connect-provisioner/internal/service/connect"
	"github.com/janisto/connect-provisioner/internal/service/provisioning"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

// traceEnv is set by the Lambda runtime for every invocation.
const traceEnv = "_X_AMZN_TRACE_ID"

type provisioner interface {
	Provision(ctx context.Context, req provisioning.Request) (*provisioning.Result, error)
}

type handler struct {
	svc provisioner
}

// Handle provisions one agent per invocation. In strict mode failures are
// returned as the invocation error; in permissive mode they are in the result.
func (h *handler) Handle(ctx context.Context, req provisioning.Request) (*provisioning.Result, error) {
	requestID := ""
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		requestID = lc.AwsRequestID
	}
	ctx = applog.WithRequest(ctx, os.Getenv(traceEnv), requestID)
	return h.svc.Provision(ctx, req)
}

func main() {
	ctx := context.Background()
	defer func() { _ = applog.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(ctx, "invalid configuration", err)
	}
	client, err := connect.NewClient(ctx, cfg.Session())
	if err != nil {
		applog.LogFatal(ctx, "failed to create connect client", err)
	}
	svc := provisioning.NewService(client, cfg.Instance(), cfg.ServiceOptions()...)

	applog.LogInfo(ctx, "lambda handler starting",
		zap.String("version", Version),
		zap.String("function", lambdacontext.FunctionName),
		zap.String("error_mode", svc.Mode().String()),
	)
	lambda.Start((&handler{svc: svc}).Handle)
}
