package tracing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/heritage/internal/observability/context"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const serverTracerName = "heritage/http"

// GinMiddleware opens a server span per request, continuing an incoming W3C
// trace. The span is renamed to the matched route once handlers ran.
func GinMiddleware() gin.HandlerFunc {
	tracer := otel.Tracer(serverTracerName)
	return func(c *gin.Context) {
		ctx := ExtractContext(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracer.Start(ctx, c.Request.Method, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		span.SetName(c.Request.Method + " " + route)
		span.SetAttributes(SafeAttributes(requestAttributes(c, route, status)...)...)

		if status < http.StatusInternalServerError {
			return
		}
		if last := c.Errors.Last(); last != nil {
			if err := SafeError(last.Err); err != nil {
				span.RecordError(err)
			}
		}
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}

func requestAttributes(c *gin.Context, route string, status int) []attribute.KeyValue {
	ctx := c.Request.Context()
	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", c.Request.Method),
		attribute.String("http.route", route),
		attribute.Int("http.response.status_code", status),
	}
	if requestID := obscontext.RequestIDFromContext(ctx); requestID != "" {
		attrs = append(attrs, attribute.String("request_id", requestID))
	}
	if id := c.Param("id"); id != "" {
		attrs = append(attrs, attribute.String("heritage.resource_id", id))
	}
	if actorType, actorID := obscontext.ActorFromContext(ctx); actorID != "" {
		attrs = append(attrs, attribute.String("enduser.type", actorType), attribute.String("enduser.id", actorID))
	}
	return attrs
}
