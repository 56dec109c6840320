package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   BookInput
		wantErr string
	}{
		{
			name:  "all required fields",
			input: BookInput{Title: "Dune", Author: "Herbert", ISBN: "111", Genre: "SciFi"},
		},
		{
			name:  "genre is optional",
			input: BookInput{Title: "Dune", Author: "Herbert", ISBN: "111"},
		},
		{
			name:    "blank title",
			input:   BookInput{Title: "   ", Author: "Herbert", ISBN: "111"},
			wantErr: "title is required",
		},
		{
			name:    "missing author",
			input:   BookInput{Title: "Dune", ISBN: "111"},
			wantErr: "author is required",
		},
		{
			name:    "missing isbn",
			input:   BookInput{Title: "Dune", Author: "Herbert", ISBN: "\t"},
			wantErr: "isbn is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBookInputComplete(t *testing.T) {
	assert.True(t, BookInput{Title: "a", Author: "b", ISBN: "c", Genre: "d"}.Complete())
	assert.False(t, BookInput{Title: "a", Author: "b", ISBN: "c", Genre: " "}.Complete())
	assert.False(t, BookInput{Author: "b", ISBN: "c", Genre: "d"}.Complete())
}

func TestBookInputBookTrims(t *testing.T) {
	got := BookInput{Title: " Dune ", Author: "Herbert ", ISBN: " 111", Genre: "SciFi"}.Book(true)
	assert.Equal(t, Book{Title: "Dune", Author: "Herbert", ISBN: "111", Genre: "SciFi", Available: true}, got)
	assert.Equal(t, "Available", got.Status())

	got.Available = false
	assert.Equal(t, "Borrowed", got.Status())
}

func TestLendingErrorsBelongToLoanFamily(t *testing.T) {
	assert.ErrorIs(t, ErrNoUser, ErrLoan)
	assert.ErrorIs(t, ErrAlreadyBorrowed, ErrLoan)
	assert.NotErrorIs(t, ErrBookNotFound, ErrLoan)
}

func TestLoanMatches(t *testing.T) {
	l := Loan{ISBN: "111", User: "alice"}
	assert.True(t, l.Matches("111", "alice"))
	assert.False(t, l.Matches("111", "bob"))
	assert.False(t, l.Matches("222", "alice"))
}
