package logging

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// TraceHeader is the AWS X-Ray propagation header.
// Example: Root=1-5759e988-bd862e3fe1be46a994272793;Parent=53995c3f42cd8ad8;Sampled=1
const TraceHeader = "X-Amzn-Trace-Id"

type xrayTrace struct {
	root    string
	parent  string
	sampled string
}

func parseTraceHeader(header string) (xrayTrace, bool) {
	var tr xrayTrace
	for part := range strings.SplitSeq(header, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "Root":
			tr.root = value
		case "Parent":
			tr.parent = value
		case "Sampled":
			tr.sampled = value
		}
	}
	if !strings.HasPrefix(tr.root, "1-") {
		return xrayTrace{}, false
	}
	return tr, true
}

func traceFields(header string) []zap.Field {
	tr, ok := parseTraceHeader(header)
	if !ok {
		return nil
	}
	fields := []zap.Field{zap.String("xray.trace_id", tr.root)}
	if tr.parent != "" {
		fields = append(fields, zap.String("xray.parent_id", tr.parent))
	}
	if tr.sampled != "" {
		fields = append(fields, zap.Bool("xray.sampled", tr.sampled == "1"))
	}
	return fields
}

func loggerWithTrace(base *zap.Logger, header, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	fields := traceFields(header)
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// WithRequest returns a context carrying a logger enriched with X-Ray trace
// and request ID fields. The correlation ID is the X-Ray root when present,
// otherwise the request ID.
func WithRequest(ctx context.Context, traceHeader, requestID string) context.Context {
	correlation := requestID
	if tr, ok := parseTraceHeader(traceHeader); ok {
		correlation = tr.root
	}
	logger := loggerWithTrace(Logger(), traceHeader, requestID)
	ctx = contextWithTraceID(ctx, correlation)
	return contextWithLogger(ctx, logger)
}
