package utils

// APIResponse is the envelope every endpoint returns. Field names match
// the contract the web client consumes: valido/erros/dados.
type APIResponse struct {
	Valido         bool        `json:"valido"`
	Erros          []string    `json:"erros"`
	Dados          interface{} `json:"dados"`
	ErroStackTrace string      `json:"erroStackTrace,omitempty"`
}

func SuccessResponse(dados interface{}) APIResponse {
	return APIResponse{
		Valido: true,
		Erros:  []string{},
		Dados:  dados,
	}
}

func ErrorResponse(erros ...string) APIResponse {
	return APIResponse{
		Valido: false,
		Erros:  erros,
	}
}
