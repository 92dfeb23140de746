package tracing

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestSafeAttributesDropsSecrets(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("http.route", "/login/"),
		attribute.String("password", "hunter2"),
		attribute.String("Authorization", "Bearer x"),
	)
	assert.Len(t, attrs, 1)
	assert.Equal(t, attribute.Key("http.route"), attrs[0].Key)
}

func TestSafeErrorTruncates(t *testing.T) {
	assert.Nil(t, SafeError(nil))
	long := errors.New(strings.Repeat("x", 400))
	assert.Len(t, SafeError(long).Error(), 256)
}
