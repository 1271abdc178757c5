package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/fadendaten/solidus-six-saferpay/internal/saferpay"
)

func TestSnapshotNilWhileUnprocessed(t *testing.T) {
	assert.Nil(t, (&Payment{}).Snapshot())
	assert.Nil(t, (&Payment{ResponseHash: datatypes.JSON(`not json`)}).Snapshot())

	// An initialize response blob has no transaction yet.
	assert.Nil(t, (&Payment{ResponseHash: datatypes.JSON(`{"Token":"tok-1"}`)}).Snapshot())
}

func TestSnapshotAccessors(t *testing.T) {
	p := &Payment{ResponseHash: snapshotJSON(t, "AUTHORIZED", "R100001", "10090", "CHF",
		&saferpay.Liability{LiabilityShift: true, LiableEntity: "ThreeDs"})}

	tx := p.Transaction()
	require.NotNil(t, tx)
	assert.Equal(t, "tx-1", tx.ID)
	assert.Equal(t, "AUTHORIZED", tx.Status)

	means := p.PaymentMeans()
	require.NotNil(t, means)
	assert.Equal(t, "VISA", means.Brand.Name)

	liability := p.Liability()
	require.NotNil(t, liability)
	assert.True(t, liability.LiabilityShift)
}

func TestResponseHashWithErrorOnEmptyBlob(t *testing.T) {
	blob := (&Payment{}).ResponseHashWithError("TOKEN_EXPIRED")
	assert.JSONEq(t, `{"error":"TOKEN_EXPIRED"}`, string(blob))
}
