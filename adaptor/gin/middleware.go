// Package gin adapts uspec constraints to the Gin framework: request fields
// are validated against registered named constraints before the handler
// runs.
package gin

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/mo"
	"github.com/tidwall/gjson"

	"github.com/sparkfund/uspec"
)

// A private type to prevent key collisions in context.
type validatedKeyType struct{}

var validatedKey = validatedKeyType{}

// Bind creates a Gin middleware validating request fields against registered
// constraints. Each entry maps a field name to a constraint name from the
// uspec registry; the value is taken from the query string first, then from
// a JSON request body. A missing field or non-conforming value aborts the
// request with 400 and a per-field error map.
func Bind(fields map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := requestBody(c)
		errs := map[string]string{}
		values := map[string]string{}
		for field, name := range fields {
			op := uspec.Lookup(name)
			if op.IsAbsent() {
				errs[field] = "unknown constraint " + name
				continue
			}
			value, found := fieldValue(c, body, field)
			if !found {
				errs[field] = "is required but not found"
				continue
			}
			if rs := op.MustGet().Conform(value); rs.IsError() {
				errs[field] = rs.Error().Error()
				continue
			}
			values[field] = value
		}
		if len(errs) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}
		ctx := context.WithValue(c.Request.Context(), validatedKey, values)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Validated retrieves the validated field map from the request context.
func Validated(c *gin.Context) map[string]string {
	if v := c.Request.Context().Value(validatedKey); v != nil {
		if m, ok := v.(map[string]string); ok {
			return m
		}
	}
	return nil
}

func requestBody(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	bts := mo.TupleToResult[[]byte](io.ReadAll(c.Request.Body))
	if bts.IsError() {
		return ""
	}
	body := string(bts.MustGet())
	if !gjson.Valid(body) {
		return ""
	}
	return body
}

func fieldValue(c *gin.Context, body, field string) (string, bool) {
	if v, ok := c.GetQuery(field); ok {
		return v, true
	}
	if body != "" {
		if res := gjson.Get(body, field); res.Exists() {
			return res.String(), true
		}
	}
	return "", false
}
