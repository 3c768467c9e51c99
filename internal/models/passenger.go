package models

type DocumentType string

const (
	DocumentCPF DocumentType = "cpf"
	DocumentRG  DocumentType = "rg"
)

// Passenger is one identity record on the checkout roster. Records are
// created blank (document type defaults to CPF, matching the form
// defaults) and validated only at submit time.
type Passenger struct {
	FullName       string       `json:"full_name"`
	DocumentType   DocumentType `json:"document_type"`
	DocumentNumber string       `json:"document_number"`
}

func NewBlankPassenger() Passenger {
	return Passenger{DocumentType: DocumentCPF}
}
