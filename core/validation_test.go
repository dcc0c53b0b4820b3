package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateEmailRecord(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		record  *EmailRecord
		wantErr error
	}{
		{
			name: "valid record",
			record: &EmailRecord{
				Id:              1,
				Contents:        "please send a payoff quote",
				ReceiverAddress: "abc123@example.com",
				CreatedAt:       validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid record with empty vector",
			record: &EmailRecord{
				Contents:        "escrow question",
				ReceiverAddress: "abc123@example.com",
				CreatedAt:       validTime,
				Vector:          nil,
			},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidEmailRecord,
		},
		{
			name: "empty contents",
			record: &EmailRecord{
				ReceiverAddress: "abc123@example.com",
				CreatedAt:       validTime,
			},
			wantErr: ErrEmptyContents,
		},
		{
			name: "empty receiver address",
			record: &EmailRecord{
				Contents:  "hello",
				CreatedAt: validTime,
			},
			wantErr: ErrEmptyReceiverAddress,
		},
		{
			name: "future timestamp",
			record: &EmailRecord{
				Contents:        "hello",
				ReceiverAddress: "abc123@example.com",
				CreatedAt:       futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmailRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateEmailRecord() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateEmailRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateReceiverAddress(t *testing.T) {
	for range 100 {
		addr := GenerateReceiverAddress()

		at := strings.IndexByte(addr, '@')
		if at < 0 {
			t.Fatalf("address %q has no @", addr)
		}

		username, domain := addr[:at], addr[at+1:]

		found := false
		for _, d := range ReceiverDomains {
			if domain == d {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("address %q uses unknown domain %q", addr, domain)
		}

		if len(username) < 5 {
			t.Errorf("address %q username too short", addr)
		}
		// 10-char base + separator + 7-char suffix is the maximum
		if len(username) > 18 {
			t.Errorf("address %q username too long", addr)
		}
		for _, r := range username {
			if !strings.ContainsRune(addressAlphabet+"_.", r) {
				t.Errorf("address %q contains unexpected rune %q", addr, r)
			}
		}
	}
}
