package service

import (
	"context"
	"errors"
	"time"

	"go-supermarket-inventory/internal/apperror"
	"go-supermarket-inventory/pkg/validator"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("go-supermarket-inventory/internal/service")

const validationFailed = "Validation error"

// Clock returns the current time; services take one so derived date fields
// can be tested.
type Clock func() time.Time

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

// endSpan marks the span failed only for unexpected errors; client errors
// are normal outcomes.
func endSpan(span trace.Span, err error) {
	if err != nil && apperror.KindOf(err) == apperror.KindInternal {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// validateAll runs every tag and reports all failures.
func validateAll(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return apperror.Validation(validationFailed, validator.Messages(errs)...)
	}
	return nil
}

// validateFirst reports only the first failing tag.
func validateFirst(req interface{}) error {
	if fe := validator.FirstError(req); fe != nil {
		return apperror.Validation(validationFailed, fe.Message)
	}
	return nil
}

// wrapInternal passes application errors through and wraps anything else.
func wrapInternal(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Internal("failed to "+op, err)
}
