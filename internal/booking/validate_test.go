package booking

import (
	"testing"

	"bus-ticketing/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassengerComplete(t *testing.T) {
	errs := ValidatePassenger(0, models.Passenger{
		FullName:       "Maria da Silva",
		DocumentType:   models.DocumentCPF,
		DocumentNumber: "123.456.789-00",
	})
	assert.Empty(t, errs)
}

func TestValidatePassengerShortName(t *testing.T) {
	errs := ValidatePassenger(2, models.Passenger{
		FullName:       "Jo",
		DocumentType:   models.DocumentRG,
		DocumentNumber: "12.345.678-9",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "full_name", errs[0].Field)
	assert.Equal(t, 2, errs[0].Index)
	assert.Equal(t, "Nome completo é obrigatório", errs[0].Message)
}

func TestValidatePassengerWhitespaceName(t *testing.T) {
	errs := ValidatePassenger(0, models.Passenger{
		FullName:       "   ",
		DocumentType:   models.DocumentCPF,
		DocumentNumber: "1",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "full_name", errs[0].Field)
}

func TestValidatePassengerBlankRecord(t *testing.T) {
	errs := ValidatePassenger(1, models.NewBlankPassenger())
	// Document type defaults to CPF, so only name and number fail
	require.Len(t, errs, 2)
	assert.Equal(t, "full_name", errs[0].Field)
	assert.Equal(t, "document_number", errs[1].Field)
	assert.Equal(t, "Número do documento é obrigatório", errs[1].Message)
}

func TestValidatePassengerUnknownDocumentType(t *testing.T) {
	errs := ValidatePassenger(0, models.Passenger{
		FullName:       "Maria da Silva",
		DocumentType:   models.DocumentType("passport"),
		DocumentNumber: "X123",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "document_type", errs[0].Field)
	assert.Equal(t, "Selecione o tipo de documento", errs[0].Message)
}

func TestValidateCardComplete(t *testing.T) {
	errs := ValidateCard(models.CardDetails{
		CardNumber: "4111111111111111",
		CardName:   "Jane Doe",
		ExpiryDate: "12/29",
		CVV:        "123",
	})
	assert.Empty(t, errs)
}

func TestValidateCardEveryFieldFails(t *testing.T) {
	errs := ValidateCard(models.CardDetails{})
	require.Len(t, errs, 4)
	fields := make([]string, len(errs))
	for i, fe := range errs {
		fields[i] = fe.Field
		assert.Equal(t, PaymentFieldIndex, fe.Index)
	}
	assert.Equal(t, []string{"card_number", "card_name", "expiry_date", "cvv"}, fields)
}

func TestValidateCardMessages(t *testing.T) {
	errs := ValidateCard(models.CardDetails{
		CardNumber: "4111",
		CardName:   "Jane Doe",
		ExpiryDate: "12/29",
		CVV:        "123",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "Número do cartão inválido", errs[0].Message)
}

func TestValidationErrorsMessages(t *testing.T) {
	errs := ValidationErrors{
		{Field: "full_name", Index: 1, Message: "Nome completo é obrigatório"},
		{Field: "cvv", Index: PaymentFieldIndex, Message: "CVV inválido"},
	}

	msgs := errs.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "passageiro 2: Nome completo é obrigatório", msgs[0])
	assert.Equal(t, "CVV inválido", msgs[1])
	assert.Contains(t, errs.Error(), "passageiro 2")
}
