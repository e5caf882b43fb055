// Package telemetry emits OpenTelemetry spans for campaigns and runs.
//
// Nothing is exported by default: without a configured provider the global
// no-op tracer is used and spans cost almost nothing.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies the instrumentation scope.
const TracerName = "github.com/agbru/primebench"

// Attribute keys attached to spans.
const (
	AttrCampaignID = attribute.Key("primebench.campaign_id")
	AttrRunID      = attribute.Key("primebench.run_id")
	AttrLabel      = attribute.Key("primebench.label")
	AttrWorkers    = attribute.Key("primebench.workers")
	AttrMaxNumber  = attribute.Key("primebench.max_number")
	AttrSteps      = attribute.Key("primebench.steps")
	AttrPrimeCount = attribute.Key("primebench.prime_count")
	AttrElapsedMs  = attribute.Key("primebench.elapsed_ms")
)

// Tracer starts campaign and run spans.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer returns a Tracer backed by tp, or by the global provider when tp is nil.
func NewTracer(tp trace.TracerProvider) *Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracer{tracer: tp.Tracer(TracerName)}
}

// StartCampaign opens the span covering a whole campaign.
func (t *Tracer) StartCampaign(ctx context.Context, campaignID string, steps int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "Campaign.Run", trace.WithAttributes(
		AttrCampaignID.String(campaignID),
		AttrSteps.Int(steps),
	))
}

// StartRun opens the span of one measured run.
func (t *Tracer) StartRun(ctx context.Context, runID, label string, workers, maxNumber int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "Runner.RunOnce", trace.WithAttributes(
		AttrRunID.String(runID),
		AttrLabel.String(label),
		AttrWorkers.Int(workers),
		AttrMaxNumber.Int(maxNumber),
	))
}

// EndRun records the outcome of a run on span and ends it.
func EndRun(span trace.Span, primeCount int, elapsed time.Duration, err error) {
	if err != nil {
		RecordError(span, err)
	} else {
		span.SetAttributes(
			AttrPrimeCount.Int(primeCount),
			AttrElapsedMs.Float64(float64(elapsed)/float64(time.Millisecond)),
		)
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// RecordError records err on span and marks it failed. Nil span or error is a no-op.
func RecordError(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if span == nil || err == nil {
		return
	}
	var opts []trace.EventOption
	if len(attrs) > 0 {
		opts = append(opts, trace.WithAttributes(attrs...))
	}
	span.RecordError(err, opts...)
	span.SetStatus(codes.Error, err.Error())
}
