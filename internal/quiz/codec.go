package quiz

import "encoding/json"

// questionWire is the JSON shape of a question. "correct" varies by type:
// an option index for mcq, an index array for multiple_correct, a boolean
// for true_false, a string for fill_blank.
type questionWire struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Difficulty  string          `json:"difficulty,omitempty"`
	Prompt      string          `json:"prompt"`
	Options     json.RawMessage `json:"options,omitempty"`
	Correct     json.RawMessage `json:"correct,omitempty"`
	Explanation string          `json:"explanation"`
	Topic       string          `json:"topic,omitempty"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	w := questionWire{
		ID:          q.ID,
		Type:        q.Type,
		Difficulty:  q.Difficulty,
		Prompt:      q.Prompt,
		Explanation: q.Explanation,
		Topic:       q.Topic,
	}
	if q.Options != nil {
		b, err := json.Marshal(q.Options)
		if err != nil {
			return nil, err
		}
		w.Options = b
	}
	if v := q.Answer.Value(); v != nil {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		w.Correct = b
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the envelope strictly but the type-specific fields
// leniently: an options or correct value of the wrong shape is dropped
// rather than failing the whole question. A question whose answer key was
// dropped can never be matched by the evaluator.
func (q *Question) UnmarshalJSON(data []byte) error {
	var w questionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*q = Question{
		ID:          w.ID,
		Type:        w.Type,
		Difficulty:  w.Difficulty,
		Prompt:      w.Prompt,
		Explanation: w.Explanation,
		Topic:       w.Topic,
	}
	if len(w.Options) > 0 {
		var opts []string
		if err := json.Unmarshal(w.Options, &opts); err == nil {
			q.Options = opts
		}
	}
	q.Answer = decodeAnswerKey(w.Type, w.Correct)
	return nil
}

func decodeAnswerKey(typ string, raw json.RawMessage) AnswerKey {
	if len(raw) == 0 {
		return AnswerKey{}
	}
	switch typ {
	case TypeMCQ:
		var i int
		if json.Unmarshal(raw, &i) == nil {
			return IndexKey(i)
		}
	case TypeMultipleCorrect:
		var ix []int
		if json.Unmarshal(raw, &ix) == nil && ix != nil {
			return IndicesKey(ix)
		}
	case TypeTrueFalse:
		var b bool
		if json.Unmarshal(raw, &b) == nil {
			return TruthKey(b)
		}
	case TypeFillBlank:
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return TextKey(s)
		}
	}
	return AnswerKey{}
}
