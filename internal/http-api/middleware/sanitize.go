package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeFields strips HTML from the named top-level string fields of JSON
// request bodies. Other fields and non-object bodies pass through untouched.
func SanitizeFields(fields ...string) gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()
	targets := make(map[string]bool, len(fields))
	for _, f := range fields {
		targets[f] = true
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}
		if c.Request.Body == nil {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		restore := func(b []byte) {
			c.Request.Body = io.NopCloser(bytes.NewReader(b))
			c.Request.ContentLength = int64(len(b))
		}

		var body map[string]json.RawMessage
		if err := json.Unmarshal(buf, &body); err != nil {
			// let binding report the error
			restore(buf)
			c.Next()
			return
		}

		changed := false
		for k, raw := range body {
			if !targets[k] {
				continue
			}
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				continue
			}
			clean := sanitizeText(policy, s)
			if clean == s {
				continue
			}
			encoded, err := json.Marshal(clean)
			if err != nil {
				continue
			}
			body[k] = encoded
			changed = true
		}

		if !changed {
			restore(buf)
			c.Next()
			return
		}

		newBody, err := json.Marshal(body)
		if err != nil {
			restore(buf)
			c.Next()
			return
		}
		restore(newBody)
		c.Next()
	}
}

// markup matches anything shaped like a tag, comment or doctype.
var markup = regexp.MustCompile(`<[a-zA-Z/!?][^<>]*>`)

// sanitizeText strips markup but keeps plain text verbatim, so "a<b" or
// "I <3 it" survive untouched. Text that only becomes markup after
// unescaping is left escaped.
func sanitizeText(policy *bluemonday.Policy, s string) string {
	if !markup.MatchString(s) {
		return s
	}
	clean := html.UnescapeString(policy.Sanitize(s))
	if markup.MatchString(clean) {
		return policy.Sanitize(clean)
	}
	return clean
}
