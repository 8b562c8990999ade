package core

import (
	"errors"
	"testing"
)

func validRecord() *Record {
	return &Record{
		Conversation: 1,
		DealContext:  "Deal Context: 3-year commitment, client asked for price stability",
		Outcome:      "Offered a capped annual increase tied to EU inflation",
		RawText:      "Conversation 1\nDeal Context: ...\nOutcome: ...",
	}
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Record)
		wantErr error
	}{
		{
			name:    "valid record",
			mutate:  func(r *Record) {},
			wantErr: nil,
		},
		{
			name:    "empty deal context",
			mutate:  func(r *Record) { r.DealContext = "" },
			wantErr: ErrEmptyDealContext,
		},
		{
			name:    "empty outcome",
			mutate:  func(r *Record) { r.Outcome = "" },
			wantErr: ErrEmptyOutcome,
		},
		{
			name:    "zero conversation number",
			mutate:  func(r *Record) { r.Conversation = 0 },
			wantErr: ErrInvalidConversation,
		},
		{
			name:    "negative conversation number",
			mutate:  func(r *Record) { r.Conversation = -3 },
			wantErr: ErrInvalidConversation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord()
			tt.mutate(record)

			err := ValidateRecord(record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateRecord() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("ValidateRecord() error %v does not wrap ErrMalformedRecord", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRecord() error %v does not wrap %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRecord_Nil(t *testing.T) {
	err := ValidateRecord(nil)
	if !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("ValidateRecord(nil) = %v, want ErrMalformedRecord", err)
	}
}

func TestValidateCorpus(t *testing.T) {
	t.Run("valid corpus", func(t *testing.T) {
		a := validRecord()
		b := validRecord()
		b.Conversation = 2
		if err := ValidateCorpus([]*Record{a, b}); err != nil {
			t.Errorf("ValidateCorpus() unexpected error: %v", err)
		}
	})

	t.Run("duplicate conversation numbers", func(t *testing.T) {
		a := validRecord()
		b := validRecord()
		err := ValidateCorpus([]*Record{a, b})
		if !errors.Is(err, ErrDuplicateConversation) {
			t.Errorf("ValidateCorpus() = %v, want ErrDuplicateConversation", err)
		}
	})

	t.Run("malformed member fails fast", func(t *testing.T) {
		a := validRecord()
		b := validRecord()
		b.Conversation = 2
		b.Outcome = ""
		err := ValidateCorpus([]*Record{a, b})
		if !errors.Is(err, ErrEmptyOutcome) {
			t.Errorf("ValidateCorpus() = %v, want ErrEmptyOutcome", err)
		}
	})

	t.Run("empty corpus", func(t *testing.T) {
		if err := ValidateCorpus(nil); err != nil {
			t.Errorf("ValidateCorpus(nil) unexpected error: %v", err)
		}
	})
}
