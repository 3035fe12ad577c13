package encode

import (
	"bytes"

	"github.com/simulacralabs/llmd/issue"
)

// MarshalIssue returns the file contents for iss.
func MarshalIssue(iss *issue.Issue, opts ...EncodeOption) []byte {
	buf := bytes.NewBuffer(nil)
	if err := Encode(iss, buf, opts...); err != nil {
		// bytes.Buffer writes do not fail
		panic(err)
	}
	return buf.Bytes()
}

func MustString(iss *issue.Issue, opts ...EncodeOption) string {
	return string(MarshalIssue(iss, opts...))
}
