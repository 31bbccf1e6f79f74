package runner

import (
	"fmt"

	"github.com/projectdiscovery/fasttemplate"
)

// FormatResult renders a query result line through template, the same
// {{...}} placeholder mechanism as replacer.go's Replace.
func FormatResult(template, word string, output uint64) string {
	values := map[string]interface{}{
		"word":   word,
		"output": fmt.Sprint(output),
	}
	return fasttemplate.ExecuteStringStd(template, "{{", "}}", values)
}
