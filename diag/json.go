package diag

// jsonFrame is the wire representation of a [Frame].
type jsonFrame struct {
	Layer   string `json:"layer"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// jsonDetail is the wire representation of a [Detail].
type jsonDetail struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// jsonIssue is the wire representation of an [Issue], produced by
// [Issue.ToJSON] and [Result.ToJSON].
type jsonIssue struct {
	Severity   string       `json:"severity"`
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	SourceName string       `json:"source_name,omitempty"`
	Line       int          `json:"line,omitempty"`
	Column     int          `json:"column,omitempty"`
	Hint       string       `json:"hint,omitempty"`
	Details    []jsonDetail `json:"details,omitempty"`
	Causes     []jsonFrame  `json:"causes,omitempty"`
}

func toJSONIssue(issue Issue) jsonIssue {
	out := jsonIssue{
		Severity:   issue.Severity().String(),
		Code:       issue.Code().String(),
		Message:    issue.Message(),
		SourceName: issue.SourceName(),
		Hint:       issue.Hint(),
	}
	if issue.HasSpan() {
		out.Line = issue.Span().Start.Line
		out.Column = issue.Span().Start.Column
	}
	for _, d := range issue.Details() {
		out.Details = append(out.Details, jsonDetail{Key: d.Key, Value: d.Value})
	}
	for _, f := range issue.Causes() {
		jf := jsonFrame{Layer: f.Layer, Message: f.Message}
		if f.HasSpan() {
			jf.Line = f.Span.Start.Line
			jf.Column = f.Span.Start.Column
		}
		out.Causes = append(out.Causes, jf)
	}
	return out
}

// ToJSON converts an Issue into a value suitable for JSON marshaling
// with encoding/json.
func (i Issue) ToJSON() any {
	return toJSONIssue(i)
}

// ToJSON converts a Result into a slice of JSON-marshalable issues.
func (r Result) ToJSON() any {
	out := make([]jsonIssue, 0, r.Len())
	for issue := range r.Issues() {
		out = append(out, toJSONIssue(issue))
	}
	return out
}
