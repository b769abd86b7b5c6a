package models

import "encoding/json"

func marshalFeed(feed []Comment) ([]byte, error) {
	return json.Marshal(feed)
}

func unmarshalFeed(data string, out *[]Comment) bool {
	return json.Unmarshal([]byte(data), out) == nil
}
