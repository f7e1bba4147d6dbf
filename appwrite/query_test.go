package appwrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryEncoding(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{
			"equal",
			Equal("email", "a@b.com"),
			`{"method":"equal","attribute":"email","values":["a@b.com"]}`,
		},
		{
			"equal set membership",
			Equal("type", "image", "video"),
			`{"method":"equal","attribute":"type","values":["image","video"]}`,
		},
		{
			"contains",
			Contains("name", "report"),
			`{"method":"contains","attribute":"name","values":["report"]}`,
		},
		{
			"limit",
			Limit(25),
			`{"method":"limit","values":[25]}`,
		},
		{
			"order asc",
			OrderAsc("size"),
			`{"method":"orderAsc","attribute":"size"}`,
		},
		{
			"order desc on system field",
			OrderDesc("$createdAt"),
			`{"method":"orderDesc","attribute":"$createdAt"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, tt.query.String())
		})
	}
}

func TestOrNestsQueries(t *testing.T) {
	q := Or(
		Equal("owner", "user1"),
		Contains("users", "a@b.com"),
	)

	assert.JSONEq(t, `{
		"method": "or",
		"values": [
			{"method":"equal","attribute":"owner","values":["user1"]},
			{"method":"contains","attribute":"users","values":["a@b.com"]}
		]
	}`, q.String())
}
