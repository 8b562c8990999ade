package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDictionaryIsValid(t *testing.T) {
	require.NoError(t, DefaultDictionary().Validate())
}

func TestDictionaryValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Dictionary)
		wantErr error
	}{
		{
			name:    "empty primary term",
			mutate:  func(d *Dictionary) { d.Primary[0].Term = "" },
			wantErr: ErrEmptyTerm,
		},
		{
			name:    "zero secondary weight",
			mutate:  func(d *Dictionary) { d.Secondary[0].Weight = 0 },
			wantErr: ErrInvalidWeight,
		},
		{
			name:    "combo without terms",
			mutate:  func(d *Dictionary) { d.Combos[0].Terms = nil },
			wantErr: ErrEmptyTerm,
		},
		{
			name:    "negative combo bonus",
			mutate:  func(d *Dictionary) { d.Combos[0].Bonus = -1 },
			wantErr: ErrInvalidWeight,
		},
		{
			name:    "zero phrase weight",
			mutate:  func(d *Dictionary) { d.PhraseWeight = 0 },
			wantErr: ErrInvalidWeight,
		},
		{
			name:    "zero overlap cap",
			mutate:  func(d *Dictionary) { d.OverlapCap = 0 },
			wantErr: ErrInvalidWeight,
		},
		{
			name:    "overlap cap reaches primary weight",
			mutate:  func(d *Dictionary) { d.OverlapCap = DefaultPrimaryWeight },
			wantErr: ErrInvalidWeight,
		},
		{
			name:    "zero weak signal threshold",
			mutate:  func(d *Dictionary) { d.WeakSignalHits = 0 },
			wantErr: ErrInvalidWeight,
		},
		{
			name:    "zero minimum term length",
			mutate:  func(d *Dictionary) { d.MinTermLength = 0 },
			wantErr: ErrInvalidWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dict := DefaultDictionary()
			tt.mutate(dict)
			assert.ErrorIs(t, dict.Validate(), tt.wantErr)
		})
	}
}

func TestNilDictionaryValidate(t *testing.T) {
	var dict *Dictionary
	assert.ErrorIs(t, dict.Validate(), ErrDictionaryRequired)
}
