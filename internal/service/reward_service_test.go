package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRewardService_ClaimDegen(t *testing.T) {
	svc := NewRewardService(zap.NewNop())

	tests := []struct {
		name    string
		points  string
		want    int64
		wantErr error
	}{
		{"zero points", "0", 0, ErrInvalidPoints},
		{"negative points", "-10", 0, ErrInvalidPoints},
		{"below threshold", "249.75", 0, ErrBelowClaimThreshold},
		{"exact threshold", "250", 25, nil},
		{"floors fraction", "259.5", 25, nil},
		{"large balance", "1234.25", 123, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.ClaimDegen("user-1", decimal.RequireFromString(tt.points))
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, resp.Success)
			assert.Equal(t, tt.want, resp.DegenAmount)
			assert.Equal(t, DegenContractAddress, resp.ContractAddress)
			assert.Equal(t, BaseChainID, resp.ChainID)
		})
	}
}

func TestRewardService_ClaimDegen_Message(t *testing.T) {
	svc := NewRewardService(zap.NewNop())

	resp, err := svc.ClaimDegen("user-1", decimal.NewFromInt(300))
	require.NoError(t, err)
	assert.Equal(t, "Successfully claimed 30 DEGEN tokens!", resp.Message)
}
