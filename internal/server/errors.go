package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	authdomain "github.com/smallbiznis/heritage/internal/auth/domain"
	"github.com/smallbiznis/heritage/internal/auth/token"
	"github.com/smallbiznis/heritage/internal/authorization"
	geodomain "github.com/smallbiznis/heritage/internal/geo/domain"
	sitedomain "github.com/smallbiznis/heritage/internal/heritagesite/domain"
	"github.com/smallbiznis/heritage/pkg/db/pagination"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrRateLimited        = errors.New("rate_limited")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

// fieldError describes how a domain sentinel is reported on a form field.
type fieldError struct {
	err     error
	field   string
	message string
}

// siteFieldErrors lists every sentinel the site service may join together.
var siteFieldErrors = []fieldError{
	{sitedomain.ErrInvalidSiteName, "site_name", "site name is required and must be at most 255 characters"},
	{sitedomain.ErrDuplicateSiteName, "site_name", "heritage site with this site name already exists"},
	{sitedomain.ErrInvalidDescription, "description", "description is required"},
	{sitedomain.ErrInvalidCategory, "heritage_site_category", "select a valid category"},
	{geodomain.ErrInvalidCategory, "heritage_site_category", "select a valid category"},
	{sitedomain.ErrInvalidDateInscribed, "date_inscribed", "date inscribed must not be negative"},
	{sitedomain.ErrInvalidLongitude, "longitude", "longitude must be between -180 and 180"},
	{sitedomain.ErrInvalidLatitude, "latitude", "latitude must be between -90 and 90"},
	{sitedomain.ErrInvalidAreaHectares, "area_hectares", "area must not be negative"},
	{sitedomain.ErrInvalidTransboundary, "transboundary", "transboundary must be 0 or 1"},
	{sitedomain.ErrCountryAreaRequired, "country_area", "select at least one country or area"},
	{sitedomain.ErrInvalidCountryArea, "country_area", "select valid countries or areas"},
}

var authFieldErrors = []fieldError{
	{authdomain.ErrInvalidEmail, "email", "enter a valid email address"},
	{authdomain.ErrWeakPassword, "password", "password must be at least 8 characters"},
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		if status == http.StatusTooManyRequests && c.Writer.Header().Get("Retry-After") == "" {
			c.Header("Retry-After", "1")
		}
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

// bindingError converts a gin binding failure into field errors.
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return invalidRequestError()
	}
	out := &ValidationErrors{Errors: make([]ValidationError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, ValidationError{
			Field:   fe.Field(),
			Code:    fe.Tag(),
			Message: validationTagMessage(fe),
		})
	}
	return out
}

func validationTagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return "ensure this field has no more than " + fe.Param() + " characters"
	case "min":
		return "ensure this field has at least " + fe.Param() + " entries"
	case "email":
		return "enter a valid email address"
	case "oneof":
		return "value must be one of " + fe.Param()
	case "gt", "gte":
		return "value must be greater than " + fe.Param()
	default:
		return "invalid value"
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if fields := domainFieldErrors(err); len(fields) > 0 {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  fields,
		}
	}

	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{Field: "request", Code: "invalid_request", Message: "invalid request"},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionNotFound),
		errors.Is(err, authdomain.ErrSessionExpired),
		errors.Is(err, authdomain.ErrSessionRevoked),
		errors.Is(err, token.ErrInvalidToken),
		errors.Is(err, token.ErrTokenExpired):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden),
		errors.Is(err, authorization.ErrInvalidActor):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, sitedomain.ErrSiteLocked),
		errors.Is(err, authdomain.ErrUserExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many requests",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

// domainFieldErrors reports one entry per sentinel found in err, so a
// joined error yields every failing field.
func domainFieldErrors(err error) []ValidationError {
	var out []ValidationError
	for _, table := range [][]fieldError{siteFieldErrors, authFieldErrors} {
		for _, fe := range table {
			if !errors.Is(err, fe.err) {
				continue
			}
			out = append(out, ValidationError{
				Field:   fe.field,
				Code:    fe.err.Error(),
				Message: fe.message,
			})
		}
	}
	return dedupeFieldErrors(out)
}

func dedupeFieldErrors(in []ValidationError) []ValidationError {
	if len(in) < 2 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, item := range in {
		key := item.Field + "|" + item.Message
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, sitedomain.ErrNotFound),
		errors.Is(err, sitedomain.ErrInvalidID),
		errors.Is(err, geodomain.ErrNotFound),
		errors.Is(err, geodomain.ErrInvalidID),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, pagination.ErrPageOutOfRange),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

// classifyErrorForLog returns the error type and code recorded on request logs.
func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		codes := make([]string, 0, len(payload.Errors))
		for _, item := range payload.Errors {
			codes = append(codes, item.Code)
		}
		code = strings.Join(codes, ",")
	}
	return payload.Type, code
}
