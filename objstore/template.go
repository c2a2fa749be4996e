package objstore

import (
	"strings"
	"time"

	"github.com/medbridge/edgepipe/constants"
)

// ResolveName substitutes the named placeholders in template with the values supplied.
// Substitution is literal string replacement, not a templating language; placeholders
// missing from the template are simply absent from the result.
// Supported placeholders: {name}, {timestamp}.
func ResolveName(template string, name string, ts time.Time) string {
	if template == "" { // if there is no template configured...
		return name // the object keeps its original name.
	}
	s := strings.Replace(template, constants.TemplateTokenName, name, -1)
	if !ts.IsZero() {
		s = strings.Replace(s, constants.TemplateTokenTimestamp, ts.Format(constants.TimeFormatYearSeconds), -1)
	}
	return s
}
