package runModel

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ResultSet maps question to answer and remembers insertion order.
// Setting an existing question overwrites its answer in place.
type ResultSet struct {
	answers *orderedmap.OrderedMap[string, string]
}

func NewResultSet() ResultSet {
	return ResultSet{answers: orderedmap.New[string, string]()}
}

func (r *ResultSet) Set(question string, answer string) {
	if r.answers == nil {
		r.answers = orderedmap.New[string, string]()
	}
	r.answers.Set(question, answer)
}

func (r ResultSet) Get(question string) (string, bool) {
	if r.answers == nil {
		return "", false
	}
	return r.answers.Get(question)
}

func (r ResultSet) Len() int {
	if r.answers == nil {
		return 0
	}
	return r.answers.Len()
}

// Questions returns the keys in insertion order.
func (r ResultSet) Questions() []string {
	questions := make([]string, 0, r.Len())
	if r.answers == nil {
		return questions
	}
	for pair := r.answers.Oldest(); pair != nil; pair = pair.Next() {
		questions = append(questions, pair.Key)
	}
	return questions
}

func (r ResultSet) MarshalJSON() ([]byte, error) {
	if r.answers == nil {
		return []byte("{}"), nil
	}
	return r.answers.MarshalJSON()
}

func (r *ResultSet) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*r = ResultSet{}
		return nil
	}
	answers := orderedmap.New[string, string]()
	if err := answers.UnmarshalJSON(data); err != nil {
		return err
	}
	r.answers = answers
	return nil
}

// PrettyJSON renders the set the way it is posted to chat channels:
// two space indentation, insertion order, HTML characters left as is.
func (r ResultSet) PrettyJSON() (string, error) {
	if r.Len() == 0 {
		return "{}", nil
	}
	var out bytes.Buffer
	out.WriteString("{\n")
	for pair := r.answers.Oldest(); pair != nil; pair = pair.Next() {
		out.WriteString("  ")
		if err := writeJSONString(&out, pair.Key); err != nil {
			return "", err
		}
		out.WriteString(": ")
		if err := writeJSONString(&out, pair.Value); err != nil {
			return "", err
		}
		if pair.Next() != nil {
			out.WriteByte(',')
		}
		out.WriteByte('\n')
	}
	out.WriteByte('}')
	return out.String(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}
