package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tuntas/internal/action"
)

func TestReactToOutcomes(t *testing.T) {
	cases := []struct {
		name string
		out  action.Outcome
		want reaction
	}{
		{
			name: "successful create closes the form",
			out:  action.Outcome{SubAction: action.ActionCreate, Success: true},
			want: reaction{closeForm: true, refetch: true},
		},
		{
			name: "successful update closes the form",
			out:  action.Outcome{SubAction: action.ActionUpdate, Success: true},
			want: reaction{closeForm: true, refetch: true},
		},
		{
			name: "successful delete opens the info banner",
			out:  action.Outcome{SubAction: action.ActionDelete, Success: true},
			want: reaction{openInfo: true, refetch: true},
		},
		{
			name: "successful check only refetches",
			out:  action.Outcome{SubAction: action.ActionCheck, Success: true},
			want: reaction{refetch: true},
		},
		{
			name: "successful rename only refetches",
			out:  action.Outcome{SubAction: action.ActionRenameActivity, Success: true},
			want: reaction{refetch: true},
		},
		{
			name: "failed delete must not show the deleted confirmation",
			out:  action.Outcome{SubAction: action.ActionDelete, Success: false},
			want: reaction{},
		},
		{
			name: "failed create leaves the form open",
			out:  action.Outcome{SubAction: action.ActionCreate, Success: false},
			want: reaction{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, reactTo(tc.out))
		})
	}
}
