package models

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestAccountCodeUniquePerUser(t *testing.T) {
	// Different users each get their own deposit/mileage accounts; only the
	// (user_id, code) pair is unique, not the code alone.
	s, err := schema.Parse(&Account{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	idx, ok := s.ParseIndexes()["idx_accounts_user_code"]
	require.True(t, ok, "composite account index missing")
	assert.Equal(t, "UNIQUE", idx.Class)
	require.Len(t, idx.Fields, 2)

	names := []string{idx.Fields[0].DBName, idx.Fields[1].DBName}
	assert.ElementsMatch(t, []string{"user_id", "code"}, names)
}

func TestParseTransactionType(t *testing.T) {
	cases := map[string]TransactionType{
		"income":     TxIncome,
		"accrual":    TxIncome,
		"outcome":    TxOutcome,
		"redemption": TxOutcome,
		"adjustment": TxAdjustment,
		"expiration": TxExpiration,
	}
	for raw, want := range cases {
		got, err := ParseTransactionType(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseTransactionType("donation")
	assert.ErrorIs(t, err, ErrUnknownTransaction)
}

func TestAccountAccrualThenOversizedRedemption(t *testing.T) {
	a := &Account{Status: AccountActive, Balance: 0}

	accrual := &Transaction{Type: TxIncome, Amount: 10000, EvidenceReference: "order:1"}
	require.NoError(t, a.Apply(accrual))
	assert.Equal(t, 10000.0, a.Balance)

	redemption := &Transaction{Type: TxOutcome, Amount: 100000, EvidenceReference: "order:2"}
	err := a.Apply(redemption)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	// A rejected attempt leaves the balance untouched.
	assert.Equal(t, 10000.0, a.Balance)
}

func TestAccountOutcomeExactBalance(t *testing.T) {
	a := &Account{Status: AccountActive, Balance: 500}
	out := &Transaction{Type: TxOutcome, Amount: 500, EvidenceReference: "order:3"}
	require.NoError(t, a.Apply(out))
	assert.Equal(t, 0.0, a.Balance)
}

func TestAccountExpirationDebits(t *testing.T) {
	a := &Account{Status: AccountActive, Balance: 300}
	exp := &Transaction{Type: TxExpiration, Amount: 100, EvidenceReference: "policy:expiry"}
	require.NoError(t, a.Apply(exp))
	assert.Equal(t, 200.0, a.Balance)
}

func TestAccountAdjustmentCarriesSign(t *testing.T) {
	a := &Account{Status: AccountActive, Balance: 100}
	down := &Transaction{Type: TxAdjustment, Amount: -40, EvidenceReference: "audit:42"}
	require.NoError(t, a.Apply(down))
	assert.Equal(t, 60.0, a.Balance)

	tooFar := &Transaction{Type: TxAdjustment, Amount: -100, EvidenceReference: "audit:43"}
	assert.ErrorIs(t, a.Apply(tooFar), ErrInsufficientFunds)
	assert.Equal(t, 60.0, a.Balance)
}

func TestTransactionEvidenceMandatory(t *testing.T) {
	a := &Account{Status: AccountActive, Balance: 100}
	trx := &Transaction{Type: TxIncome, Amount: 10}
	assert.ErrorIs(t, a.Apply(trx), ErrEvidenceRequired)
}

func TestTransactionUnknownTypeRejected(t *testing.T) {
	a := &Account{Status: AccountActive, Balance: 100}
	trx := &Transaction{Type: "donation", Amount: 10, EvidenceReference: "x"}
	assert.ErrorIs(t, a.Apply(trx), ErrUnknownTransaction)
	assert.Equal(t, 100.0, a.Balance)
}

func TestTransactionNonPositiveAmountRejected(t *testing.T) {
	a := &Account{Status: AccountActive, Balance: 100}
	trx := &Transaction{Type: TxIncome, Amount: 0, EvidenceReference: "x"}
	assert.ErrorIs(t, a.Apply(trx), ErrValidation)
}

func TestFrozenAccountRejectsAll(t *testing.T) {
	a := &Account{Status: AccountFrozen, Balance: 100}
	trx := &Transaction{Type: TxIncome, Amount: 10, EvidenceReference: "x"}
	assert.ErrorIs(t, a.Apply(trx), ErrFrozen)
	assert.Equal(t, 100.0, a.Balance)
}

func TestTransactionEraseTwiceFails(t *testing.T) {
	trx := &Transaction{Type: TxIncome, Amount: 10, EvidenceReference: "x"}
	now := time.Now().UTC()

	require.NoError(t, trx.Erase(now))
	assert.True(t, trx.IsDeleted())
	assert.ErrorIs(t, trx.Erase(now.Add(time.Second)), ErrAlreadyDeleted)
}
