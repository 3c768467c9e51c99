package booking

import (
	"fmt"
	"strings"

	"bus-ticketing/internal/models"
)

// PaymentFieldIndex marks a FieldError as belonging to the payment form
// rather than to a passenger on the roster.
const PaymentFieldIndex = -1

type FieldError struct {
	Field   string `json:"field"`
	Index   int    `json:"index"`
	Message string `json:"message"`
}

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		if fe.Index >= 0 {
			msgs[i] = fmt.Sprintf("passageiro %d: %s", fe.Index+1, fe.Message)
		} else {
			msgs[i] = fe.Message
		}
	}
	return strings.Join(msgs, "; ")
}

// Messages returns the per-field messages for the response envelope.
func (v ValidationErrors) Messages() []string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		if fe.Index >= 0 {
			msgs[i] = fmt.Sprintf("passageiro %d: %s", fe.Index+1, fe.Message)
		} else {
			msgs[i] = fe.Message
		}
	}
	return msgs
}

// ValidatePassenger applies the submit-time rules for one roster entry.
// The index is carried into the errors so the UI can attach them to the
// right passenger card.
func ValidatePassenger(index int, p models.Passenger) ValidationErrors {
	var errs ValidationErrors
	if len(strings.TrimSpace(p.FullName)) < 3 {
		errs = append(errs, FieldError{Field: "full_name", Index: index, Message: "Nome completo é obrigatório"})
	}
	if p.DocumentType != models.DocumentCPF && p.DocumentType != models.DocumentRG {
		errs = append(errs, FieldError{Field: "document_type", Index: index, Message: "Selecione o tipo de documento"})
	}
	if len(p.DocumentNumber) < 1 {
		errs = append(errs, FieldError{Field: "document_number", Index: index, Message: "Número do documento é obrigatório"})
	}
	return errs
}

// ValidateCard applies the submit-time rules for the payment form.
func ValidateCard(card models.CardDetails) ValidationErrors {
	var errs ValidationErrors
	if len(card.CardNumber) < 16 {
		errs = append(errs, FieldError{Field: "card_number", Index: PaymentFieldIndex, Message: "Número do cartão inválido"})
	}
	if len(card.CardName) < 3 {
		errs = append(errs, FieldError{Field: "card_name", Index: PaymentFieldIndex, Message: "Nome no cartão é obrigatório"})
	}
	if len(card.ExpiryDate) < 5 {
		errs = append(errs, FieldError{Field: "expiry_date", Index: PaymentFieldIndex, Message: "Data de validade inválida"})
	}
	if len(card.CVV) < 3 {
		errs = append(errs, FieldError{Field: "cvv", Index: PaymentFieldIndex, Message: "CVV inválido"})
	}
	return errs
}
