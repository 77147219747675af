package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// readJSONInput parses a --json flag value into a JSON object. A value
// starting with @ is read from the named file.
func readJSONInput(input string) (map[string]interface{}, error) {
	data := []byte(input)
	if strings.HasPrefix(input, "@") {
		content, err := os.ReadFile(input[1:])
		if err != nil {
			return nil, fmt.Errorf("read JSON input: %w", err)
		}
		data = content
	}
	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("parse JSON input: %w", err)
	}
	return body, nil
}
