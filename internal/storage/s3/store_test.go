package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"notes.pdf", "notes.pdf"},
		{"my notes (final).pdf", "my_notes__final_.pdf"},
		{"../../etc/passwd", "passwd"},
		{"résumé.pdf", "r_sum_.pdf"},
		{"report_v2-draft.PDF", "report_v2-draft.PDF"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CleanFileName(tc.in), "input %q", tc.in)
	}
}
