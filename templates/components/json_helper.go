package components

import (
	"encoding/json"
	"log"
)

// JSON marshals an object to a JSON string, returning "{}" on error.
// The output is safe inside a <script type="application/json"> block.
func JSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARNING] Error marshaling JSON: %v", err)
		return "{}"
	}
	return string(b)
}
