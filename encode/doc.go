// Package encode writes issue records back to their file form: a "---"
// delimited frontmatter block with a fixed key order, a blank line, then the
// body.
//
// # Usage
//
//	var buf bytes.Buffer
//	err := encode.Encode(iss, &buf)
//
//	// colored, for a terminal
//	err = encode.Encode(iss, os.Stdout, encode.EncodeColors(encode.NewColors()))
//
//	// append a comment record to the body
//	iss.Body = encode.AppendComment(iss.Body, issue.Comment{Author: "ann", Date: issue.Now(), Body: "done"})
//
// # Related Packages
//
//   - github.com/simulacralabs/llmd/parse - reads what this package writes
//   - github.com/simulacralabs/llmd/issue - the record types
package encode
