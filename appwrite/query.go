package appwrite

import "encoding/json"

// Query is one entry of Appwrite's list-query DSL. Queries are sent as
// individual JSON objects in the queries[] URL parameter.
type Query struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

func (q Query) String() string {
	b, _ := json.Marshal(q)
	return string(b)
}

// Equal matches documents whose attribute equals any of the given
// values, so a multi-value call doubles as a set-membership filter.
func Equal(attribute string, values ...any) Query {
	return Query{Method: "equal", Attribute: attribute, Values: values}
}

// Contains matches documents whose array attribute contains the value,
// or whose string attribute has it as a substring.
func Contains(attribute string, values ...any) Query {
	return Query{Method: "contains", Attribute: attribute, Values: values}
}

// Or matches documents satisfying at least one of the nested queries.
func Or(queries ...Query) Query {
	values := make([]any, len(queries))
	for i, q := range queries {
		values[i] = q
	}
	return Query{Method: "or", Values: values}
}

// Limit bounds the result count.
func Limit(n int) Query {
	return Query{Method: "limit", Values: []any{n}}
}

// OrderAsc sorts ascending by the attribute.
func OrderAsc(attribute string) Query {
	return Query{Method: "orderAsc", Attribute: attribute}
}

// OrderDesc sorts descending by the attribute.
func OrderDesc(attribute string) Query {
	return Query{Method: "orderDesc", Attribute: attribute}
}
