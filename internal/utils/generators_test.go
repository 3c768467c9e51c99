package utils_test

import (
	"strings"
	"testing"

	"bus-ticketing/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedIDPrefixes(t *testing.T) {
	assert.True(t, strings.HasPrefix(utils.GenerateTicketID(), "tkt_"))
	assert.True(t, strings.HasPrefix(utils.GeneratePaymentID(), "pay_"))
	assert.True(t, strings.HasPrefix(utils.GenerateTransactionID(), "txn_"))
}

func TestGenerateConfirmationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := utils.GenerateConfirmationCode()
		require.Len(t, code, 8)
		// No ambiguous characters, these are read out at the gate
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45, "codes should essentially never repeat")
}

func TestResponseEnvelope(t *testing.T) {
	ok := utils.SuccessResponse(map[string]string{"id": "ord-1"})
	assert.True(t, ok.Valido)
	assert.Empty(t, ok.Erros)
	assert.NotNil(t, ok.Dados)

	bad := utils.ErrorResponse("Número do cartão inválido", "CVV inválido")
	assert.False(t, bad.Valido)
	assert.Len(t, bad.Erros, 2)
	assert.Nil(t, bad.Dados)
}
